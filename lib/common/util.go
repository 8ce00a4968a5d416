package common

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"

	"github.com/google/uuid"
)

const MaxUintEncodeByte = 8

func GetUniqueIDFromUUID() string {
	return uuid.Must(uuid.NewUUID()).String()
}

func GenerateUUID() string {
	return uuid.New().String()
}

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}

	return
}

func InStringArray(a []string, s string) (index int, found bool) {
	var h string
	for index, h = range a {
		found = h == s
		if found {
			return
		}
	}

	index = -1
	return
}

// EncodeJSONValue encodes without escaping html characters, so descriptions
// are stored as they were submitted.
func EncodeJSONValue(v interface{}) (b []byte, err error) {
	if b, err = JSONMarshalWithoutEscapeHTML(v); err != nil {
		return
	}

	return bytes.TrimRight(b, "\n"), nil
}

func DecodeJSONValue(b []byte, v interface{}) error {
	return json.Unmarshal(b, v)
}

func JSONMarshalWithoutEscapeHTML(v interface{}) ([]byte, error) {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

//
// Function to wrap calls to `json.Unmarshall` that cannot fail
//
// This function should only be used when doing calls that cannot fails,
// e.g. reading the content of the on-disk storage which was serialized by
// votechain. It ensures no silent corruption of data can happen
func MustUnmarshalJSON(data []byte, v interface{}) {
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}

func MustMarshalJSON(o interface{}) []byte {
	b, _ := json.Marshal(o)
	return b
}

func JSONMarshalIndent(o interface{}) ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}

// Uint64ToLittleEndian returns the 8 bytes little-endian form of `n`.
func Uint64ToLittleEndian(n uint64) []byte {
	b := make([]byte, MaxUintEncodeByte)
	binary.LittleEndian.PutUint64(b, n)

	return b
}
