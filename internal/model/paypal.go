package model

type PaypalLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type Amount struct {
	Currency string `json:"currency_code"`
	Value    string `json:"value"`
}

type Capture struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	CreateTime string `json:"create_time"`
	Final      bool   `json:"final_capture"`
	Amount     Amount `json:"amount"`
}

type Payments struct {
	Captures []Capture `json:"captures"`
}

type PurchaseUnit struct {
	ReferenceID string   `json:"reference_id"`
	Amount      Amount   `json:"amount"`
	Payments    Payments `json:"payments"`
}

// PaypalOrder is the subset of the Orders v2 resource the storefront reads.
type PaypalOrder struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Links         []PaypalLink   `json:"links"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

type PaypalErrorDetail struct {
	Issue       string `json:"issue"`
	Description string `json:"description"`
}

type PaypalError struct {
	Name    string              `json:"name"`
	Message string              `json:"message"`
	Details []PaypalErrorDetail `json:"details"`
}
