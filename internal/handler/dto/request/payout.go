package request

import (
	"shortlet-booking/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type SettlePayoutRequest struct {
	Method    string `json:"method" binding:"required,oneof=bank_transfer mobile_money cash other"`
	Reference string `json:"reference" binding:"required,max=100"`
	Note      string `json:"note" binding:"required,max=500"`
	Currency  string `json:"currency" binding:"omitempty,currency"`
}

func (r SettlePayoutRequest) ToInput() (commands.SettlementInput, error) {
	var in commands.SettlementInput
	if err := copier.Copy(&in, &r); err != nil {
		return commands.SettlementInput{}, err
	}
	return in, nil
}
