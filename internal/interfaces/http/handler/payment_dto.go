package handler

// MobileChargeRequest is the mobile money checkout form
type MobileChargeRequest struct {
	Phone    string `json:"phone" form:"phone" binding:"required,mwphone" example:"0991234567"`
	Provider string `json:"provider" form:"provider" binding:"required,max=50" example:"airtel"`
}

// CardChargeRequest is the card checkout form. Card data is passed to the
// gateway and never stored.
type CardChargeRequest struct {
	CardNumber     string `json:"card_number" form:"card_number" binding:"required,cardnumber,max=23" example:"4242 4242 4242 4242"`
	Expiry         string `json:"expiry" form:"expiry" binding:"required,max=7" example:"12/27"`
	CVV            string `json:"cvv" form:"cvv" binding:"required,numeric,min=3,max=4"`
	CardholderName string `json:"cardholder_name" form:"cardholder_name" binding:"required,max=100"`
	RedirectURL    string `json:"redirect_url" form:"redirect_url" binding:"omitempty,url,max=500"`
}

// VerifyRequest is the optional verification body sent by the gateway
// redirect. The attempt already records its channel, so Type only has to
// be well formed.
type VerifyRequest struct {
	Type string `json:"type" form:"type" binding:"omitempty,oneof=card mobile mobile_money"`
}
