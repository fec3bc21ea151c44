package model

// QuoteCartLine is one candidate order line in a user's quote cart. The cart
// is not a database table: the full line list is serialized to Redis as JSON
// and rewritten on every mutation.
//
// Lines are identified by (ProductID, SelectedColor) for merging; name, image
// and MOQ are snapshots taken from the product at add time.
type QuoteCartLine struct {
	ProductID          uint   `json:"product_id"`
	ProductName        string `json:"product_name"`
	ProductImage       string `json:"product_image"`
	Quantity           int    `json:"quantity"`
	CustomizationNotes string `json:"customization_notes"`
	MOQ                int    `json:"moq"`
	SelectedColor      string `json:"selected_color"`
}
