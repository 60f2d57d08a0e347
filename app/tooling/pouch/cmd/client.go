package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

type newBlock struct {
	Date   string  `json:"date"`
	TID    string  `json:"tid"`
	Credit *string `json:"credit,omitempty"`
	Debit  *string `json:"debit,omitempty"`
	Memo   string  `json:"memo,omitempty"`
}

type transaction struct {
	TID    string  `json:"tid"`
	Credit *string `json:"credit"`
	Debit  *string `json:"debit"`
	Memo   string  `json:"memo"`
}

type block struct {
	Number        uint64      `json:"number"`
	TimeStamp     string      `json:"timestamp"`
	Transaction   transaction `json:"transaction"`
	PrevBlockHash string      `json:"prev_block_hash"`
	Hash          string      `json:"hash"`
}

type balance struct {
	Balance     string `json:"balance"`
	Blocks      int    `json:"blocks"`
	LatestBlock string `json:"latest_block"`
	Subscribers int    `json:"subscribers"`
}

type verification struct {
	Valid  bool   `json:"valid"`
	Number uint64 `json:"number"`
	Reason string `json:"reason"`
}

// apiError is the error document returned by the service.
type apiError struct {
	Status int               `json:"-"`
	Err    string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

func (ae *apiError) Error() string {
	switch {
	case ae.Code != "":
		return fmt.Sprintf("%d: %s: %s", ae.Status, ae.Code, ae.Err)
	case len(ae.Fields) > 0:
		return fmt.Sprintf("%d: %s: %v", ae.Status, ae.Err, ae.Fields)
	}
	return fmt.Sprintf("%d: %s", ae.Status, ae.Err)
}

// normalizeAmount turns user input like "5" or "5.5" into the two decimal
// place form the ledger accepts. More than two decimal places is an error.
func normalizeAmount(amount string) (string, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("amount[%s]: %w", amount, err)
	}

	if d.IsNegative() {
		return "", fmt.Errorf("amount[%s]: must not be negative", amount)
	}

	if !d.Equal(d.Round(2)) {
		return "", fmt.Errorf("amount[%s]: more than two decimal places", amount)
	}

	return d.StringFixed(2), nil
}

func submit(baseURL string, nb newBlock) (block, error) {
	data, err := json.Marshal(nb)
	if err != nil {
		return block{}, err
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/blocks/add", baseURL), "application/json", bytes.NewBuffer(data))
	if err != nil {
		return block{}, err
	}
	defer resp.Body.Close()

	var blk block
	if err := decodeResponse(resp, &blk); err != nil {
		return block{}, err
	}

	return blk, nil
}

func get(baseURL string, path string, v any) error {
	resp, err := http.Get(baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, v)
}

func decodeResponse(resp *http.Response, v any) error {
	decoder := json.NewDecoder(resp.Body)

	if resp.StatusCode != http.StatusOK {
		ae := apiError{Status: resp.StatusCode}
		if err := decoder.Decode(&ae); err != nil {
			return fmt.Errorf("status[%d]: %w", resp.StatusCode, err)
		}
		return &ae
	}

	if err := decoder.Decode(v); err != nil {
		return errors.Join(errors.New("decoding response"), err)
	}

	return nil
}
