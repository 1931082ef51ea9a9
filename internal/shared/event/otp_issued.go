package event

const AccountOTPIssuedDestination string = "account_otp_issued"
const AccountOTPIssuedConsumerNotification string = "account_otp_issued_notification"

// AccountOTPIssuedMessage is published every time an account gets a new code.
type AccountOTPIssuedMessage struct {
	AccountID int64  `json:"account_id,string"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Code      string `json:"code"`
	Purpose   string `json:"purpose"`
}
