package shopify

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// removes the "Default Title" variant Shopify creates with the product
const variantsStrategy = "REMOVE_STANDALONE_VARIANT"

const defaultOptionName = "Title"

// CreateProduct creates the product and then, in order, its variants, media,
// collection memberships and metafields. The first failure ends the run.
// Once the product exists a failure returns the partial result together with
// an *Error carrying the product id; nothing is rolled back.
func CreateProduct(ctx context.Context, shopURL, accessToken string, in ProductInput, opts ...Option) (*CreationResult, error) {
	s, err := NewService(Config{Shop: shopURL, AccessToken: accessToken}, opts...)
	if err != nil {
		return nil, err
	}
	return s.CreateProduct(ctx, in)
} // ./CreateProduct

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*CreationResult, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	log := s.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("title", strings.TrimSpace(in.Title)),
	)

	log.Debug("creating product")
	p, err := s.createProduct(ctx, in)
	if err != nil {
		log.Error("product create failed", zap.Error(err))
		return nil, err
	}
	rs := &CreationResult{Product: *p}
	log = log.With(zap.String("product_id", p.ID))
	log.Info("product created")

	if len(in.Variants) > 0 {
		log.Debug("creating variants", zap.Int("count", len(in.Variants)))
		vv, err := s.createVariants(ctx, p.ID, in.Variants)
		if err != nil {
			return rs, partial(log, p.ID, err)
		}
		rs.Variants = vv
	}

	if len(in.Media) > 0 {
		log.Debug("attaching media", zap.Int("count", len(in.Media)))
		mm, err := s.attachMedia(ctx, p.ID, in.Media)
		if err != nil {
			return rs, partial(log, p.ID, err)
		}
		rs.Media = mm
	}

	for _, c := range in.Collections {
		log.Debug("joining collection", zap.String("collection_id", c))
		id, err := s.addToCollection(ctx, p.ID, c)
		if err != nil {
			return rs, partial(log, p.ID, err)
		}
		rs.Collections = append(rs.Collections, id)
	}

	if len(in.Metafields) > 0 {
		log.Debug("setting metafields", zap.Int("count", len(in.Metafields)))
		ff, err := s.setMetafields(ctx, p.ID, in.Metafields)
		if err != nil {
			return rs, partial(log, p.ID, err)
		}
		rs.Metafields = ff
	}

	log.Info("product creation complete",
		zap.Int("variants", len(rs.Variants)),
		zap.Int("media", len(rs.Media)),
		zap.Int("collections", len(rs.Collections)),
		zap.Int("metafields", len(rs.Metafields)),
	)
	return rs, nil
} // ./CreateProduct

// partial tags err with the product that was left in place.
func partial(log *zap.Logger, productID string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		e.ProductID = productID
	}
	log.Warn("product created but a follow-up step failed", zap.Error(err))
	return err
} // ./partial

func (s *Service) validate(in ProductInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title", "title is required")
	}
	switch in.Status {
	case "", StatusActive, StatusDraft:
	default:
		return invalid("status", "%q is not one of ACTIVE, DRAFT", in.Status)
	}
	for i, o := range in.Options {
		if strings.TrimSpace(o.Name) == "" {
			return invalid(fmt.Sprintf("productOptions[%d].name", i), "option name is required")
		}
	}
	for i, v := range in.Variants {
		field := fmt.Sprintf("variants[%d]", i)
		if v.InventoryQuantity < 0 {
			return invalid(field+".inventoryQuantity", "must not be negative, got %d", v.InventoryQuantity)
		}
		if v.InventoryQuantity > 0 && v.LocationID == "" && s.locationID == "" {
			return invalid(field+".locationId", "a location is required to stock %d units", v.InventoryQuantity)
		}
		if v.Weight < 0 {
			return invalid(field+".weight", "must not be negative")
		}
		if v.Weight > 0 {
			switch v.WeightUnit {
			case Grams, Kilograms, Ounces, Pounds:
			default:
				return invalid(field+".weightUnit", "%q is not one of GRAMS, KILOGRAMS, OUNCES, POUNDS", v.WeightUnit)
			}
		}
		switch v.InventoryPolicy {
		case "", InventoryDeny, InventoryContinue:
		default:
			return invalid(field+".inventoryPolicy", "%q is not one of DENY, CONTINUE", v.InventoryPolicy)
		}
	}
	for i, m := range in.Media {
		field := fmt.Sprintf("media[%d]", i)
		if strings.TrimSpace(m.Src) == "" {
			return invalid(field+".src", "media source is required")
		}
		switch m.Type {
		case MediaImage, MediaVideo, MediaExternalVideo, MediaModel3D:
		default:
			return invalid(field+".type", "%q is not one of IMAGE, VIDEO, EXTERNAL_VIDEO, MODEL_3D", m.Type)
		}
	}
	for i, c := range in.Collections {
		if strings.TrimSpace(c) == "" {
			return invalid(fmt.Sprintf("collectionsToJoin[%d]", i), "collection id is required")
		}
	}
	for i, m := range in.Metafields {
		field := fmt.Sprintf("metafields[%d]", i)
		switch {
		case m.Key == "":
			return invalid(field+".key", "metafield key is required")
		case m.Type == "":
			return invalid(field+".type", "metafield type is required")
		case m.Value == "":
			return invalid(field+".value", "metafield value is required")
		}
	}
	return nil
} // ./validate

func (s *Service) createProduct(ctx context.Context, in ProductInput) (*Product, error) {
	type optionValue struct {
		Name string `json:"name"`
	}
	type option struct {
		Name   string        `json:"name"`
		Values []optionValue `json:"values,omitempty"`
	}
	type input struct {
		Title               string        `json:"title"`
		DescriptionHTML     string        `json:"descriptionHtml,omitempty"`
		ProductType         string        `json:"productType,omitempty"`
		Vendor              string        `json:"vendor,omitempty"`
		Handle              string        `json:"handle,omitempty"`
		Tags                []string      `json:"tags,omitempty"`
		Status              ProductStatus `json:"status,omitempty"`
		SEO                 *SEO          `json:"seo,omitempty"`
		GiftCard            bool          `json:"giftCard,omitempty"`
		RequiresSellingPlan bool          `json:"requiresSellingPlan,omitempty"`
		ProductOptions      []option      `json:"productOptions,omitempty"`
	}
	type response struct {
		ProductCreate *struct {
			Product    *Product    `json:"product"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"productCreate"`
	}

	v := input{
		Title:               strings.TrimSpace(in.Title),
		DescriptionHTML:     in.DescriptionHTML,
		ProductType:         in.ProductType,
		Vendor:              in.Vendor,
		Handle:              in.Handle,
		Tags:                in.Tags,
		Status:              in.Status,
		GiftCard:            in.GiftCard,
		RequiresSellingPlan: in.RequiresSellingPlan,
	}
	if in.SEO != nil && (in.SEO.Title != "" || in.SEO.Description != "") {
		seo := *in.SEO
		v.SEO = &seo
	}
	for _, o := range in.Options {
		opt := option{Name: o.Name}
		for _, val := range o.Values {
			opt.Values = append(opt.Values, optionValue{Name: val})
		}
		v.ProductOptions = append(v.ProductOptions, opt)
	}

	var rs response
	err := s.run(ctx, opProductCreate, productCreateMutation, map[string]interface{}{"input": v}, &rs)
	if err != nil {
		return nil, err
	}
	if rs.ProductCreate == nil {
		return nil, &Error{Kind: KindRequest, Op: opProductCreate, Err: errors.New("no productCreate payload returned")}
	}
	if len(rs.ProductCreate.UserErrors) > 0 {
		return nil, userErrors(opProductCreate, rs.ProductCreate.UserErrors)
	}
	if rs.ProductCreate.Product == nil || rs.ProductCreate.Product.ID == "" {
		return nil, &Error{Kind: KindRequest, Op: opProductCreate, Err: errors.New("no product data returned")}
	}
	return rs.ProductCreate.Product, nil
} // ./createProduct

func (s *Service) createVariants(ctx context.Context, productID string, vv []VariantInput) ([]Variant, error) {
	type optionValue struct {
		OptionName string `json:"optionName"`
		Name       string `json:"name"`
	}
	type weight struct {
		Value float64    `json:"value"`
		Unit  WeightUnit `json:"unit"`
	}
	type measurement struct {
		Weight weight `json:"weight"`
	}
	type inventoryItem struct {
		SKU              string       `json:"sku,omitempty"`
		Tracked          *bool        `json:"tracked,omitempty"`
		RequiresShipping *bool        `json:"requiresShipping,omitempty"`
		Measurement      *measurement `json:"measurement,omitempty"`
	}
	type inventoryLevel struct {
		AvailableQuantity int    `json:"availableQuantity"`
		LocationID        string `json:"locationId"`
	}
	type input struct {
		Price               *decimal.Decimal `json:"price,omitempty"`
		CompareAtPrice      *decimal.Decimal `json:"compareAtPrice,omitempty"`
		Barcode             string           `json:"barcode,omitempty"`
		Taxable             *bool            `json:"taxable,omitempty"`
		InventoryPolicy     InventoryPolicy  `json:"inventoryPolicy,omitempty"`
		OptionValues        []optionValue    `json:"optionValues,omitempty"`
		InventoryItem       *inventoryItem   `json:"inventoryItem,omitempty"`
		InventoryQuantities []inventoryLevel `json:"inventoryQuantities,omitempty"`
	}
	type response struct {
		ProductVariantsBulkCreate *struct {
			ProductVariants []Variant   `json:"productVariants"`
			UserErrors      []UserError `json:"userErrors"`
		} `json:"productVariantsBulkCreate"`
	}

	in := make([]input, 0, len(vv))
	for _, v := range vv {
		i := input{
			Price:           v.Price,
			CompareAtPrice:  v.CompareAtPrice,
			Barcode:         v.Barcode,
			Taxable:         v.Taxable,
			InventoryPolicy: v.InventoryPolicy,
		}
		for _, o := range v.OptionValues {
			i.OptionValues = append(i.OptionValues, optionValue(o))
		}
		if len(i.OptionValues) == 0 && v.Title != "" {
			i.OptionValues = []optionValue{{OptionName: defaultOptionName, Name: v.Title}}
		}

		item := inventoryItem{
			SKU:              v.SKU,
			Tracked:          v.Tracked,
			RequiresShipping: v.RequiresShipping,
		}
		if v.Weight > 0 {
			item.Measurement = &measurement{Weight: weight{Value: v.Weight, Unit: v.WeightUnit}}
		}
		if v.InventoryQuantity > 0 {
			if item.Tracked == nil {
				tracked := true
				item.Tracked = &tracked
			}
			loc := v.LocationID
			if loc == "" {
				loc = s.locationID
			}
			i.InventoryQuantities = []inventoryLevel{{AvailableQuantity: v.InventoryQuantity, LocationID: loc}}
		}
		if item != (inventoryItem{}) {
			i.InventoryItem = &item
		}
		in = append(in, i)
	}

	var rs response
	err := s.run(ctx, opProductVariantsCreate, productVariantsBulkCreateMutation, map[string]interface{}{
		"productId": productID,
		"variants":  in,
		"strategy":  variantsStrategy,
	}, &rs)
	if err != nil {
		return nil, err
	}
	if rs.ProductVariantsBulkCreate == nil {
		return nil, &Error{Kind: KindRequest, Op: opProductVariantsCreate, Err: errors.New("no productVariantsBulkCreate payload returned")}
	}
	if len(rs.ProductVariantsBulkCreate.UserErrors) > 0 {
		return nil, userErrors(opProductVariantsCreate, rs.ProductVariantsBulkCreate.UserErrors)
	}
	return rs.ProductVariantsBulkCreate.ProductVariants, nil
} // ./createVariants

func (s *Service) attachMedia(ctx context.Context, productID string, mm []MediaItem) ([]Media, error) {
	type input struct {
		OriginalSource   string    `json:"originalSource"`
		MediaContentType MediaType `json:"mediaContentType"`
		Alt              string    `json:"alt"`
	}
	type response struct {
		ProductCreateMedia *struct {
			Media           []Media     `json:"media"`
			MediaUserErrors []UserError `json:"mediaUserErrors"`
		} `json:"productCreateMedia"`
	}

	in := make([]input, 0, len(mm))
	for _, m := range mm {
		in = append(in, input{
			OriginalSource:   strings.TrimSpace(m.Src),
			MediaContentType: m.Type,
			Alt:              m.Alt,
		})
	}

	var rs response
	err := s.run(ctx, opProductCreateMedia, productCreateMediaMutation, map[string]interface{}{
		"productId": productID,
		"media":     in,
	}, &rs)
	if err != nil {
		return nil, err
	}
	if rs.ProductCreateMedia == nil {
		return nil, &Error{Kind: KindRequest, Op: opProductCreateMedia, Err: errors.New("no productCreateMedia payload returned")}
	}
	if len(rs.ProductCreateMedia.MediaUserErrors) > 0 {
		return nil, userErrors(opProductCreateMedia, rs.ProductCreateMedia.MediaUserErrors)
	}
	out := rs.ProductCreateMedia.Media
	for i := range out {
		if i < len(in) && out[i].Src == "" {
			out[i].Src = in[i].OriginalSource
		}
	}
	return out, nil
} // ./attachMedia

func (s *Service) addToCollection(ctx context.Context, productID, collectionID string) (string, error) {
	type response struct {
		CollectionAddProducts *struct {
			Collection *struct {
				ID string `json:"id"`
			} `json:"collection"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"collectionAddProducts"`
	}

	var rs response
	err := s.run(ctx, opCollectionAddProducts, collectionAddProductsMutation, map[string]interface{}{
		"id":         collectionID,
		"productIds": []string{productID},
	}, &rs)
	if err != nil {
		return "", err
	}
	if rs.CollectionAddProducts == nil {
		return "", &Error{Kind: KindRequest, Op: opCollectionAddProducts, Err: errors.New("no collectionAddProducts payload returned")}
	}
	if len(rs.CollectionAddProducts.UserErrors) > 0 {
		return "", userErrors(opCollectionAddProducts, rs.CollectionAddProducts.UserErrors)
	}
	if c := rs.CollectionAddProducts.Collection; c != nil && c.ID != "" {
		return c.ID, nil
	}
	return collectionID, nil
} // ./addToCollection

func (s *Service) setMetafields(ctx context.Context, productID string, ff []MetafieldInput) ([]Metafield, error) {
	type input struct {
		OwnerID   string `json:"ownerId"`
		Namespace string `json:"namespace,omitempty"`
		Key       string `json:"key"`
		Value     string `json:"value"`
		Type      string `json:"type"`
	}
	type response struct {
		MetafieldsSet *struct {
			Metafields []Metafield `json:"metafields"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"metafieldsSet"`
	}

	in := make([]input, 0, len(ff))
	for _, f := range ff {
		in = append(in, input{
			OwnerID:   productID,
			Namespace: f.Namespace,
			Key:       f.Key,
			Value:     f.Value,
			Type:      f.Type,
		})
	}

	var rs response
	err := s.run(ctx, opMetafieldsSet, metafieldsSetMutation, map[string]interface{}{"metafields": in}, &rs)
	if err != nil {
		return nil, err
	}
	if rs.MetafieldsSet == nil {
		return nil, &Error{Kind: KindRequest, Op: opMetafieldsSet, Err: errors.New("no metafieldsSet payload returned")}
	}
	if len(rs.MetafieldsSet.UserErrors) > 0 {
		return nil, userErrors(opMetafieldsSet, rs.MetafieldsSet.UserErrors)
	}
	return rs.MetafieldsSet.Metafields, nil
} // ./setMetafields
