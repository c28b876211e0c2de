package importer

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/finsight/finsight/internal/model"
)

// OFXParser parses OFX/QFX bank and credit card exports.
type OFXParser struct{}

// NewOFXParser creates an OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in OFX files: leading
// whitespace before the header, mixed-case SEVERITY values, and SGML-style
// tags missing their closing bracket.
func (p *OFXParser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = tagFixRegex.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses an OFX/QFX file and returns transaction inputs.
// Transaction direction comes from the amount sign (OFX uses negative for
// outflows); descriptions are cleaned merchant names. Categories are filled
// only where the OFX transaction type implies one.
func (p *OFXParser) ParseFile(reader io.Reader) ([]model.TransactionInput, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var inputs []model.TransactionInput
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				if input, ok := p.convert(ofxTx); ok {
					inputs = append(inputs, input)
				}
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				if input, ok := p.convert(ofxTx); ok {
					inputs = append(inputs, input)
				}
			}
		}
	}

	slog.Info("Parsed OFX file",
		"transactions", len(inputs),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return inputs, nil
}

// convert maps one OFX transaction onto a transaction input. Zero-amount
// entries (balance markers, declined holds) are dropped.
func (p *OFXParser) convert(ofxTx ofxgo.Transaction) (model.TransactionInput, bool) {
	amount, _ := ofxTx.TrnAmt.Float64()

	txnType := model.Credit
	if amount < 0 {
		amount = -amount
		txnType = model.Debit
	}
	if amount == 0 {
		return model.TransactionInput{}, false
	}

	input := model.TransactionInput{
		Date:        model.DateOf(ofxTx.DtPosted.Time),
		Description: p.extractMerchantName(ofxTx),
		Amount:      amount,
		Type:        txnType,
	}

	switch fmt.Sprintf("%v", ofxTx.TrnType) {
	case "INT", "DIRECTDEP", "DIV":
		input.Category = model.CategoryIncome
	case "FEE", "SRVCHG":
		input.Category = model.CategoryOther
	}

	return input, true
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *OFXParser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Strip "MM/DD " date prefixes some banks prepend.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
