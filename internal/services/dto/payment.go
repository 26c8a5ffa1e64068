package dto

type STKPushRequest struct {
	JobID       string  `json:"job_id" validate:"required,uuid4"`
	PhoneNumber string  `json:"phone_number" validate:"required,e164"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

type STKPushResponse struct {
	TransactionID     string `json:"transaction_id"`
	CheckoutRequestID string `json:"checkout_request_id"`
	CustomerMessage   string `json:"customer_message"`
}

// MpesaCallback mirrors the Daraja STK callback envelope. Only the
// fields we act on are declared.
type MpesaCallback struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

func (c *MpesaCallback) Receipt() string {
	for _, item := range c.Body.StkCallback.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			if s, ok := item.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}
