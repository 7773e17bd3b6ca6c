package devbackend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tyler-smith/go-bip39"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/backend"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
)

var errInvalidMnemonic = errors.New("invalid mnemonic phrase")

type mnemonicBody struct {
	Mnemonic string `json:"mnemonic"`
	Network  string `json:"network"`
}

type sendBody struct {
	Mnemonic   string `json:"mnemonic"`
	ToAddress  string `json:"to_address"`
	AmountSats int64  `json:"amount_sats"`
}

type invoiceBody struct {
	Mnemonic   string `json:"mnemonic"`
	AmountSats int64  `json:"amount_sats"`
	Memo       string `json:"memo"`
	Invoice    string `json:"invoice"`
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(backend.Envelope{Success: true, Data: data})
}

func fail(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(backend.Envelope{Error: msg, Code: code})
}

// parse decodes the body into v. A failure has already been answered
// when it returns false.
func parse(c *fiber.Ctx, v any) (bool, error) {
	if err := c.BodyParser(v); err != nil {
		return false, fail(c, backend.CodeBadRequest, "request body must be JSON")
	}
	return true, nil
}

// phrase validates and normalizes a submitted mnemonic.
func phrase(c *fiber.Ctx, mnemonic string) (string, bool, error) {
	p := wallet.NormalizeMnemonicInput(mnemonic)
	if !bip39.IsMnemonicValid(p) {
		return "", false, fail(c, backend.CodeInvalidMnemonic, "Invalid mnemonic phrase")
	}
	return p, true, nil
}

func (s *Server) createWallet(c *fiber.Ctx) error {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return fmt.Errorf("generating entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return fmt.Errorf("encoding mnemonic: %w", err)
	}

	s.mu.Lock()
	info := s.accountLocked(mnemonic).info
	s.mu.Unlock()
	return ok(c, info)
}

func (s *Server) restoreWallet(c *fiber.Ctx) error {
	var body mnemonicBody
	if parsed, err := parse(c, &body); !parsed {
		return err
	}
	p, valid, err := phrase(c, body.Mnemonic)
	if !valid {
		return err
	}

	s.mu.Lock()
	info := s.accountLocked(p).info
	s.mu.Unlock()
	return ok(c, info)
}

func (s *Server) getBalance(c *fiber.Ctx) error {
	var body mnemonicBody
	if parsed, err := parse(c, &body); !parsed {
		return err
	}
	p, valid, err := phrase(c, body.Mnemonic)
	if !valid {
		return err
	}

	s.mu.Lock()
	acct := s.accountLocked(p)
	bal := backend.Balance{
		Confirmed:   acct.confirmed,
		Unconfirmed: acct.unconfirmed,
		Total:       acct.confirmed + acct.unconfirmed,
	}
	s.mu.Unlock()
	return ok(c, bal)
}

func (s *Server) getTransactions(c *fiber.Ctx) error {
	var body mnemonicBody
	if parsed, err := parse(c, &body); !parsed {
		return err
	}
	p, valid, err := phrase(c, body.Mnemonic)
	if !valid {
		return err
	}

	s.mu.Lock()
	acct := s.accountLocked(p)
	// Newest first.
	txs := make([]backend.Transaction, 0, len(acct.txs))
	for i := len(acct.txs) - 1; i >= 0; i-- {
		txs = append(txs, acct.txs[i])
	}
	s.mu.Unlock()
	return ok(c, txs)
}

func (s *Server) sendBitcoin(c *fiber.Ctx) error {
	var body sendBody
	if parsed, err := parse(c, &body); !parsed {
		return err
	}
	p, valid, err := phrase(c, body.Mnemonic)
	if !valid {
		return err
	}
	to := strings.TrimSpace(body.ToAddress)
	if to == "" || !isKnownPrefix(to) {
		return fail(c, backend.CodeInvalidAddress, "Invalid destination address")
	}
	if body.AmountSats <= 0 {
		return fail(c, backend.CodeBadRequest, "amount_sats must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.accountLocked(p)
	txid, paid := s.spendLocked(acct, body.AmountSats, NetworkFee)
	if !paid {
		return fail(c, backend.CodeInsufficientFunds, "Insufficient funds")
	}
	if id, local := s.addresses[to]; local {
		s.depositLocked(s.accounts[id], body.AmountSats, 0)
	}
	return ok(c, backend.SendResult{TxID: txid, FeeSats: NetworkFee})
}

func (s *Server) createInvoice(c *fiber.Ctx) error {
	var body invoiceBody
	if parsed, err := parse(c, &body); !parsed {
		return err
	}
	p, valid, err := phrase(c, body.Mnemonic)
	if !valid {
		return err
	}
	if body.AmountSats <= 0 {
		return fail(c, backend.CodeBadRequest, "amount_sats must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.accountLocked(p)
	hash := randomHex(32)
	inv := &invoice{
		Invoice: backend.Invoice{
			PaymentRequest: fmt.Sprintf("lntb%dn1p%s", body.AmountSats*10, hash[:40]),
			PaymentHash:    hash,
			AmountSats:     body.AmountSats,
			Memo:           body.Memo,
			ExpiresAt:      s.opts.Now().Add(InvoiceTTL).Unix(),
		},
		payee: acct.info.WalletID,
	}
	s.invoices[inv.PaymentRequest] = inv
	return ok(c, inv.Invoice)
}

func (s *Server) payInvoice(c *fiber.Ctx) error {
	var body invoiceBody
	if parsed, err := parse(c, &body); !parsed {
		return err
	}
	p, valid, err := phrase(c, body.Mnemonic)
	if !valid {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, found := s.invoices[strings.TrimSpace(body.Invoice)]
	switch {
	case !found:
		return fail(c, backend.CodeInvalidInvoice, "Unknown invoice")
	case inv.paid:
		return fail(c, backend.CodeInvalidInvoice, "Invoice already paid")
	case s.opts.Now().Unix() > inv.ExpiresAt:
		return fail(c, backend.CodeInvalidInvoice, "Invoice expired")
	}

	payer := s.accountLocked(p)
	if payer.info.WalletID == inv.payee {
		return fail(c, backend.CodeInvalidInvoice, "Cannot pay your own invoice")
	}
	if _, paid := s.spendLocked(payer, inv.AmountSats, LightningFee); !paid {
		return fail(c, backend.CodeInsufficientFunds, "Insufficient funds")
	}
	s.depositLocked(s.accounts[inv.payee], inv.AmountSats, 1)
	inv.paid = true

	return ok(c, backend.Payment{
		PaymentHash: inv.PaymentHash,
		Preimage:    randomHex(32),
		AmountSats:  inv.AmountSats,
		FeeSats:     LightningFee,
		Status:      "succeeded",
	})
}

func (s *Server) simplePrice(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"bitcoin": fiber.Map{"usd": s.opts.PriceUSD}})
}
