package shopify

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	StatusActive ProductStatus = "ACTIVE"
	StatusDraft  ProductStatus = "DRAFT"
)

type MediaType string

const (
	MediaImage         MediaType = "IMAGE"
	MediaVideo         MediaType = "VIDEO"
	MediaExternalVideo MediaType = "EXTERNAL_VIDEO"
	MediaModel3D       MediaType = "MODEL_3D"
)

type WeightUnit string

const (
	Grams     WeightUnit = "GRAMS"
	Kilograms WeightUnit = "KILOGRAMS"
	Ounces    WeightUnit = "OUNCES"
	Pounds    WeightUnit = "POUNDS"
)

type InventoryPolicy string

const (
	InventoryDeny     InventoryPolicy = "DENY"
	InventoryContinue InventoryPolicy = "CONTINUE"
)

// ProductInput describes the product to create. Zero values are left out of
// the request.
type ProductInput struct {
	Title               string           `json:"title"`
	DescriptionHTML     string           `json:"descriptionHtml,omitempty"`
	ProductType         string           `json:"productType,omitempty"`
	Vendor              string           `json:"vendor,omitempty"`
	Handle              string           `json:"handle,omitempty"`
	Tags                []string         `json:"tags,omitempty"`
	Status              ProductStatus    `json:"status,omitempty"`
	SEO                 *SEO             `json:"seo,omitempty"`
	GiftCard            bool             `json:"giftCard,omitempty"`
	RequiresSellingPlan bool             `json:"requiresSellingPlan,omitempty"`
	Options             []ProductOption  `json:"productOptions,omitempty"`
	Variants            []VariantInput   `json:"variants,omitempty"`
	Media               []MediaItem      `json:"media,omitempty"`
	Collections         []string         `json:"collectionsToJoin,omitempty"`
	Metafields          []MetafieldInput `json:"metafields,omitempty"`
}

type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type VariantOptionValue struct {
	OptionName string `json:"optionName"`
	Name       string `json:"name"`
}

type VariantInput struct {
	Title             string               `json:"title,omitempty"`
	Price             *decimal.Decimal     `json:"price,omitempty"`
	CompareAtPrice    *decimal.Decimal     `json:"compareAtPrice,omitempty"`
	SKU               string               `json:"sku,omitempty"`
	Barcode           string               `json:"barcode,omitempty"`
	InventoryQuantity int                  `json:"inventoryQuantity,omitempty"`
	InventoryPolicy   InventoryPolicy      `json:"inventoryPolicy,omitempty"`
	Tracked           *bool                `json:"tracked,omitempty"`
	RequiresShipping  *bool                `json:"requiresShipping,omitempty"`
	Taxable           *bool                `json:"taxable,omitempty"`
	Weight            float64              `json:"weight,omitempty"`
	WeightUnit        WeightUnit           `json:"weightUnit,omitempty"`
	OptionValues      []VariantOptionValue `json:"optionValues,omitempty"`
	// LocationID overrides Config.LocationID for the inventory quantity.
	LocationID string `json:"locationId,omitempty"`
}

type MediaItem struct {
	Type MediaType `json:"type"`
	Src  string    `json:"src"`
	Alt  string    `json:"alt,omitempty"`
}

type MetafieldInput struct {
	Namespace string `json:"namespace,omitempty"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

// Product is the product as echoed back by productCreate.
type Product struct {
	raw             []byte
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Handle          string              `json:"handle"`
	Description     string              `json:"description"`
	DescriptionHTML string              `json:"descriptionHtml"`
	ProductType     string              `json:"productType"`
	Vendor          string              `json:"vendor"`
	Status          string              `json:"status"`
	Tags            []string            `json:"tags"`
	Options         []ProductOptionInfo `json:"options"`
	SEO             SEO                 `json:"seo"`
	Variants        []Variant           `json:"variants"`
	Media           []Media             `json:"media"`
	Metafields      []Metafield         `json:"metafields"`
}

type ProductOptionInfo struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Variant struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Sku               string `json:"sku"`
	Price             string `json:"price"`
	InventoryQuantity int    `json:"inventoryQuantity"`
}

type Media struct {
	ID               string `json:"id"`
	MediaContentType string `json:"mediaContentType"`
	Alt              string `json:"alt"`
	Status           string `json:"status,omitempty"`
	Src              string `json:"src,omitempty"`
}

type Metafield struct {
	ID        string `json:"id"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

func (p Product) Raw() string {
	return string(p.raw)
} // ./Raw

// connection decodes either a GraphQL connection ({"nodes": [...]}) or a
// plain list, which is how Product marshals itself.
type connection[T any] []T

func (c *connection[T]) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var nn []T
		if err := json.Unmarshal(data, &nn); err != nil {
			return err
		}
		*c = nn
		return nil
	}
	var conn struct {
		Nodes []T `json:"nodes"`
	}
	if err := json.Unmarshal(data, &conn); err != nil {
		return err
	}
	*c = conn.Nodes
	return nil
} // ./UnmarshalJSON

func (p *Product) UnmarshalJSON(data []byte) error {
	type media struct {
		Media
		Image *struct {
			OriginalSrc string `json:"originalSrc"`
		} `json:"image"`
	}
	type product struct {
		ID              string                `json:"id"`
		Title           string                `json:"title"`
		Handle          string                `json:"handle"`
		Description     string                `json:"description"`
		DescriptionHTML string                `json:"descriptionHtml"`
		ProductType     string                `json:"productType"`
		Vendor          string                `json:"vendor"`
		Status          string                `json:"status"`
		Tags            []string              `json:"tags"`
		Options         []ProductOptionInfo   `json:"options"`
		SEO             SEO                   `json:"seo"`
		Variants        connection[Variant]   `json:"variants"`
		Media           connection[media]     `json:"media"`
		Metafields      connection[Metafield] `json:"metafields"`
	}
	var _p product
	err := json.Unmarshal(data, &_p)
	if err != nil {
		return err
	}
	var mm []Media
	for _, m := range _p.Media {
		if m.Image != nil {
			m.Media.Src = m.Image.OriginalSrc
		}
		mm = append(mm, m.Media)
	}
	*p = Product{
		raw:             append([]byte(nil), data...),
		ID:              _p.ID,
		Title:           _p.Title,
		Handle:          _p.Handle,
		Description:     _p.Description,
		DescriptionHTML: _p.DescriptionHTML,
		ProductType:     _p.ProductType,
		Vendor:          _p.Vendor,
		Status:          _p.Status,
		Tags:            _p.Tags,
		Options:         _p.Options,
		SEO:             _p.SEO,
		Variants:        []Variant(_p.Variants),
		Media:           mm,
		Metafields:      []Metafield(_p.Metafields),
	}
	return nil
} // ./UnmarshalJSON

// CreationResult accumulates what each call of CreateProduct confirmed.
type CreationResult struct {
	Product     Product     `json:"product"`
	Variants    []Variant   `json:"variants,omitempty"`
	Media       []Media     `json:"media,omitempty"`
	Collections []string    `json:"collections,omitempty"`
	Metafields  []Metafield `json:"metafields,omitempty"`
}

func (r *CreationResult) ProductID() string {
	if r == nil {
		return ""
	}
	return r.Product.ID
} // ./ProductID
