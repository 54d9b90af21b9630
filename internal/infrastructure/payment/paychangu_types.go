package payment

import "encoding/json"

// payChanguEnvelope is the outer shape of every PayChangu response
type payChanguEnvelope struct {
	Status  string          `json:"status"`
	Message json.RawMessage `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// message returns the human readable message; PayChangu sometimes sends
// an object of field errors instead of a string.
func (e *payChanguEnvelope) message() string {
	if len(e.Message) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Message, &s); err == nil {
		return s
	}
	return string(e.Message)
}

type mobileChargeBody struct {
	ChargeID    string            `json:"charge_id"`
	Mobile      string            `json:"mobile"`
	OperatorRef string            `json:"mobile_money_operator_ref_id"`
	Amount      json.Number       `json:"amount"`
	Currency    string            `json:"currency"`
	Email       string            `json:"email,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type mobileChargeData struct {
	ChargeID string `json:"charge_id"`
}

type cardChargeBody struct {
	CardNumber     string `json:"card_number"`
	Expiry         string `json:"expiry"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholder_name"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	Email          string `json:"email,omitempty"`
	ChargeID       string `json:"charge_id"`
	RedirectURL    string `json:"redirect_url,omitempty"`
}

type cardChargeData struct {
	RedirectURL   string `json:"redirect_url"`
	Authorization struct {
		RedirectURL string `json:"redirect_url"`
	} `json:"authorization"`
}

type verifyData struct {
	Status string `json:"status"`
}

type payoutBody struct {
	Amount      json.Number `json:"amount"`
	Mobile      string      `json:"mobile"`
	OperatorRef string      `json:"mobile_money_operator_ref_id"`
	Currency    string      `json:"currency"`
	ChargeID    string      `json:"charge_id"`
}

type payoutData struct {
	ChargeID string `json:"charge_id"`
	Status   string `json:"status"`
	RefID    string `json:"ref_id"`
}
