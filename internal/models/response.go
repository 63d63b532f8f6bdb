package models

import (
	"net/http"
	"time"
)

// ResponseModel Base response structure that can be reused
type ResponseModel struct {
	Code        int         `json:"code"`
	CurrentTime int64       `json:"currentTime"`
	Data        interface{} `json:"data"`
	Text        string      `json:"text"`
	Version     int         `json:"version"`
}

// ResponseCurrentTime returns the current time in milliseconds since the
// epoch, the unit every response envelope reports.
func ResponseCurrentTime() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// NewResponse creates a ResponseModel with the given code, data and text.
func NewResponse(code int, data interface{}, text string) ResponseModel {
	return ResponseModel{
		Code:        code,
		CurrentTime: ResponseCurrentTime(),
		Data:        data,
		Text:        text,
		Version:     2,
	}
}

// NewOKResponse creates a 200 response wrapping the given data.
func NewOKResponse(data interface{}) ResponseModel {
	return NewResponse(http.StatusOK, data, "OK")
}

// NewEntryResponse creates a 200 response with a single entry payload.
func NewEntryResponse(entry interface{}) ResponseModel {
	data := map[string]interface{}{
		"entry": entry,
	}
	return NewOKResponse(data)
}

// NewListResponse creates a 200 response with a list payload.
func NewListResponse(list interface{}) ResponseModel {
	data := map[string]interface{}{
		"list": list,
	}
	return NewOKResponse(data)
}
