package shopify

const (
	opProductCreate         = "productCreate"
	opProductVariantsCreate = "productVariantsBulkCreate"
	opProductCreateMedia    = "productCreateMedia"
	opCollectionAddProducts = "collectionAddProducts"
	opMetafieldsSet         = "metafieldsSet"
)

const productCreateMutation = `
	mutation productCreate($input: ProductInput!) {
		productCreate(input: $input) {
			product {
				id
				title
				handle
				description
				descriptionHtml
				productType
				vendor
				status
				tags
				options {
					id
					name
					values
				}
				seo {
					title
					description
				}
				variants(first: 100) {
					nodes {
						id
						title
						sku
						price
						inventoryQuantity
					}
				}
				media(first: 100) {
					nodes {
						id
						mediaContentType
						alt
						... on MediaImage {
							image {
								originalSrc
							}
						}
					}
				}
				metafields(first: 100) {
					nodes {
						id
						namespace
						key
						value
						type
					}
				}
			}
			userErrors {
				field
				message
			}
		}
	}
`

const productVariantsBulkCreateMutation = `
	mutation productVariantsBulkCreate($productId: ID!, $variants: [ProductVariantsBulkInput!]!, $strategy: ProductVariantsBulkCreateStrategy) {
		productVariantsBulkCreate(productId: $productId, variants: $variants, strategy: $strategy) {
			productVariants {
				id
				title
				sku
				price
				inventoryQuantity
			}
			userErrors {
				field
				message
				code
			}
		}
	}
`

const productCreateMediaMutation = `
	mutation productCreateMedia($productId: ID!, $media: [CreateMediaInput!]!) {
		productCreateMedia(productId: $productId, media: $media) {
			media {
				id
				mediaContentType
				alt
				status
			}
			mediaUserErrors {
				field
				message
				code
			}
		}
	}
`

const collectionAddProductsMutation = `
	mutation collectionAddProducts($id: ID!, $productIds: [ID!]!) {
		collectionAddProducts(id: $id, productIds: $productIds) {
			collection {
				id
			}
			userErrors {
				field
				message
			}
		}
	}
`

const metafieldsSetMutation = `
	mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
		metafieldsSet(metafields: $metafields) {
			metafields {
				id
				namespace
				key
				value
				type
			}
			userErrors {
				field
				message
				code
			}
		}
	}
`
