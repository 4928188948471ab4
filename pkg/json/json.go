package json

import (
	"bytes"
	stdjson "encoding/json"
	"errors"

	jsoniter "github.com/json-iterator/go"
)

// API 全局json编解码器，与标准库行为兼容
var API = jsoniter.ConfigCompatibleWithStandardLibrary

// decodeAPI 解码时保留数字原文，避免大整数ID被转成float64
var decodeAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Number 数字原文
type Number = stdjson.Number

// RawMessage 已编码的JSON，序列化时原样输出
type RawMessage = stdjson.RawMessage

// ErrInvalid 输入不是合法JSON
var ErrInvalid = errors.New("invalid json")

// Marshal 序列化
func Marshal(v interface{}) ([]byte, error) {
	return API.Marshal(v)
}

// MarshalToString 序列化为字符串
func MarshalToString(v interface{}) (string, error) {
	return API.MarshalToString(v)
}

// Unmarshal 反序列化
func Unmarshal(data []byte, v interface{}) error {
	return API.Unmarshal(data, v)
}

// Decode 将任意JSON文本解码为通用结构（object/array/scalar），数字保持为Number。
// 同时返回紧凑形式的原文，键顺序与输入一致。
// UseNumber模式下解码器会接受 "-"、"01" 这类非法数字，必须先校验。
func Decode(data []byte) (interface{}, RawMessage, error) {
	if !Valid(data) {
		return nil, nil, ErrInvalid
	}
	var buf bytes.Buffer
	if err := stdjson.Compact(&buf, data); err != nil {
		return nil, nil, ErrInvalid
	}
	compact := buf.Bytes()

	var v interface{}
	if err := decodeAPI.Unmarshal(compact, &v); err != nil {
		return nil, nil, err
	}
	return v, RawMessage(compact), nil
}

// Valid 检查是否为合法JSON
func Valid(data []byte) bool {
	return API.Valid(data)
}

// MarshalIndent 序列化并缩进。
// jsoniter不会缩进json.Marshaler的输出，这里先紧凑序列化再统一缩进。
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	raw, err := API.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := stdjson.Indent(&buf, raw, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
