package payments

import "encoding/json"

// Response is a raw Bot API reply.
type Response struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
}

// RawData flattens the response for logging. An undecodable result is kept as text.
func (r *Response) RawData() Params {
	if r == nil {
		return Params{}
	}

	data := Params{"ok": r.OK}
	if len(r.Result) > 0 {
		var result any
		if err := json.Unmarshal(r.Result, &result); err != nil {
			data["result"] = string(r.Result)
		} else {
			data["result"] = result
		}
	}
	if r.ErrorCode != 0 {
		data["error_code"] = r.ErrorCode
	}
	if r.Description != "" {
		data["description"] = r.Description
	}

	return data
}
