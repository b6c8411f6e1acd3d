package aosmith

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"
)

type passcodePayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// buildPasscode turns the raw credentials into the opaque login blob the
// vendor expects: the JSON document {"email":...,"password":...} is
// percent-encoded and the percent-encoded bytes are base64-encoded.
func buildPasscode(email string, password string) string {
	jsonBytes, _ := json.Marshal(passcodePayload{Email: email, Password: password})
	encoded := percentEncode(string(jsonBytes))
	return base64.StdEncoding.EncodeToString([]byte(encoded))
}

// percentEncode escapes every reserved character with %XX, using %20 for
// spaces rather than the form-encoding '+'.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// decodePasscode reverses buildPasscode. The server is the real consumer of
// the blob; this is kept so the encoding can be verified locally.
func decodePasscode(passcode string) (email string, password string, err error) {
	encoded, err := base64.StdEncoding.DecodeString(passcode)
	if err != nil {
		return "", "", err
	}
	jsonString, err := url.QueryUnescape(string(encoded))
	if err != nil {
		return "", "", err
	}
	var payload passcodePayload
	if err := json.Unmarshal([]byte(jsonString), &payload); err != nil {
		return "", "", err
	}
	return payload.Email, payload.Password, nil
}
