package controllerImp

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/display"
	"github.com/Willysmile/Gestion-des-plantes-sub001/pkg/httputil"
)

type DisplayCtrl struct{}

func New() *DisplayCtrl { return &DisplayCtrl{} }

type unitLabelReq struct {
	Unit   string          `json:"unit"`
	Amount json.RawMessage `json:"amount"`
}

// decodeAmount keeps the JSON type of amount: numbers stay json.Number,
// strings stay strings, null and a missing field become nil.
func decodeAmount(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// UnitLabel serves POST /display/unit-label {unit, amount}.
func (h *DisplayCtrl) UnitLabel(c echo.Context) error {
	var req unitLabelReq
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return httputil.Error(c, http.StatusBadRequest, "bad json")
	}
	amount, err := decodeAmount(req.Amount)
	if err != nil {
		return httputil.Error(c, http.StatusBadRequest, "bad amount")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"unit":   req.Unit,
		"amount": amount,
		"label":  display.ResolveLabel(req.Unit, amount),
	})
}
