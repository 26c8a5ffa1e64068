package mpesa

import "errors"

// STKPushRequest initiates a customer-to-business payment prompt on the
// payer's phone.
type STKPushRequest struct {
	PhoneNumber string  // 2547XXXXXXXX format
	Amount      float64 // whole shillings; Daraja rejects decimals
	AccountRef  string
	Description string
}

type STKPushResponse struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResponseCode      string `json:"ResponseCode"`
	CustomerMessage   string `json:"CustomerMessage"`
}

// B2CRequest pays out from the business account to a worker's phone.
type B2CRequest struct {
	PhoneNumber string
	Amount      float64
	Remarks     string
}

type B2CResponse struct {
	ConversationID string `json:"ConversationID"`
	ResponseCode   string `json:"ResponseCode"`
}

// Gateway is the payment-gateway boundary. The payment service depends on
// this interface only; the Daraja client implements it.
type Gateway interface {
	STKPush(req *STKPushRequest) (*STKPushResponse, error)
	B2CPayment(req *B2CRequest) (*B2CResponse, error)
}

// DisabledGateway rejects every payment request. Used when Daraja
// credentials are not configured so the rest of the API still serves.
type DisabledGateway struct{}

func NewDisabledGateway() *DisabledGateway {
	return &DisabledGateway{}
}

func (g *DisabledGateway) STKPush(req *STKPushRequest) (*STKPushResponse, error) {
	return nil, errors.New("mpesa gateway is not configured")
}

func (g *DisabledGateway) B2CPayment(req *B2CRequest) (*B2CResponse, error) {
	return nil, errors.New("mpesa gateway is not configured")
}
