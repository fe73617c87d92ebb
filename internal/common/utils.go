package common

import (
	"strings"
	"time"
)

const (
	JWTKey       = "weft_jwt_key"
	JWTExpire    = 24 * time.Hour
	JWTNewExpire = 1 * time.Hour
)

func GetAuthorizationToken(authHeader string) (string, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return "", NewErrNo(TokenInvalid)
	}
	return parts[1], nil
}
