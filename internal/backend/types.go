package backend

// Error codes the backend may put in the envelope's code field.
const (
	CodeInvalidMnemonic   = "INVALID_MNEMONIC"
	CodeInvalidAddress    = "INVALID_ADDRESS"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeInvalidInvoice    = "INVALID_INVOICE"
	CodeBadRequest        = "BAD_REQUEST"
)

// Endpoint paths.
const (
	PathCreateWallet    = "/create-wallet"
	PathRestoreWallet   = "/restore-wallet"
	PathGetBalance      = "/get-balance"
	PathGetTransactions = "/get-transactions"
	PathSendBitcoin     = "/send-bitcoin"
	PathCreateInvoice   = "/lightning/create-invoice"
	PathPayInvoice      = "/lightning/pay-invoice"
)

// Envelope wraps every backend response. Failure is signalled by
// Success=false, whatever the HTTP status.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// WalletInfo is returned by create-wallet and restore-wallet.
type WalletInfo struct {
	WalletID string `json:"wallet_id"`
	Address  string `json:"address"`
	Mnemonic string `json:"mnemonic"`
}

// Balance is a wallet balance in satoshis.
type Balance struct {
	Confirmed   int64 `json:"confirmed"`
	Unconfirmed int64 `json:"unconfirmed"`
	Total       int64 `json:"total"`
}

// Transaction is one history entry. Amount is signed: negative for spends.
type Transaction struct {
	TxID          string `json:"txid"`
	Amount        int64  `json:"amount"`
	Confirmations int64  `json:"confirmations"`
	Timestamp     int64  `json:"timestamp"`
}

// Confirmed reports whether the transaction has at least one confirmation.
func (t Transaction) Confirmed() bool {
	return t.Confirmations > 0
}

// SendRequest is the body of send-bitcoin.
type SendRequest struct {
	Mnemonic   string `json:"mnemonic"`
	ToAddress  string `json:"to_address"`
	AmountSats int64  `json:"amount_sats"`
}

// SendResult is the data of a successful send.
type SendResult struct {
	TxID    string `json:"txid"`
	FeeSats int64  `json:"fee_sats,omitempty"`
}

// Invoice is a Lightning payment request.
type Invoice struct {
	PaymentRequest string `json:"payment_request"`
	PaymentHash    string `json:"payment_hash"`
	AmountSats     int64  `json:"amount_sats"`
	Memo           string `json:"memo,omitempty"`
	ExpiresAt      int64  `json:"expires_at,omitempty"`
}

// Payment is the result of paying a Lightning invoice.
type Payment struct {
	PaymentHash string `json:"payment_hash"`
	Preimage    string `json:"preimage,omitempty"`
	AmountSats  int64  `json:"amount_sats"`
	FeeSats     int64  `json:"fee_sats"`
	Status      string `json:"status"`
}

type mnemonicRequest struct {
	Mnemonic string `json:"mnemonic"`
}

type restoreRequest struct {
	Mnemonic string `json:"mnemonic"`
	Network  string `json:"network"`
}

type createInvoiceRequest struct {
	Mnemonic   string `json:"mnemonic"`
	AmountSats int64  `json:"amount_sats"`
	Memo       string `json:"memo,omitempty"`
}

type payInvoiceRequest struct {
	Mnemonic string `json:"mnemonic"`
	Invoice  string `json:"invoice"`
}
