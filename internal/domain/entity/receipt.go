package entity

// Receipt is the fiscal receipt attached to a payment
type Receipt struct {
	Email    string
	Taxation string
	Items    []ReceiptItem
}

// ReceiptItem is one position of a receipt. Price and Amount are in the
// smallest currency unit.
type ReceiptItem struct {
	Name          string
	Price         int64
	Quantity      float64
	Amount        int64
	Tax           string
	PaymentMethod string
	PaymentObject string
}

// ReceiptTemplate describes the single product sold by the bot
type ReceiptTemplate struct {
	Taxation      string
	ItemName      string
	Tax           string
	PaymentMethod string
	PaymentObject string
}

// NewSubscriptionReceipt builds a one-item receipt for amount sent to email
func NewSubscriptionReceipt(email string, amount int64, tpl ReceiptTemplate) Receipt {
	return Receipt{
		Email:    email,
		Taxation: tpl.Taxation,
		Items: []ReceiptItem{{
			Name:          tpl.ItemName,
			Price:         amount,
			Quantity:      1,
			Amount:        amount,
			Tax:           tpl.Tax,
			PaymentMethod: tpl.PaymentMethod,
			PaymentObject: tpl.PaymentObject,
		}},
	}
}
