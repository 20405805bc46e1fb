package jsonutil

import "encoding/json"

func Encode(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func Decode(data string, v interface{}) error {
	return json.Unmarshal([]byte(data), v)
}
