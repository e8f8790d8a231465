package audio

import "encoding/base64"

// DecodeBase64 converts a standard base64 payload (as delivered by the speech
// provider) into raw PCM bytes. Byte order is preserved exactly.
func DecodeBase64(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return data, nil
}

// EncodeBase64 is the inverse of DecodeBase64
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
