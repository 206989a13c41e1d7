package render

import (
	"encoding/json"
	"net/http"

	"lending/core"
	"lending/handler/codes"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(v)
}

// Error write error
func Error(w http.ResponseWriter, err error) {
	code, ok := err.(core.ErrorCode)
	if !ok {
		code = core.ErrUnknown
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(codes.HTTPStatus(code))

	_ = json.NewEncoder(w).Encode(H{"code": int(code), "msg": code.Hint()})
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	_ = json.NewEncoder(w).Encode(H{"code": -1, "msg": err.Error()})
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)

	_ = json.NewEncoder(w).Encode(H{"code": -1, "msg": err.Error()})
}
