package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/safety-storefront/app/config"
	"github.com/safety-storefront/app/responses"
	"go.uber.org/zap"
)

// ContextAdminEmail key trong gin.Context chứa email admin đã xác thực
const ContextAdminEmail = "admin_email"

// AdminClaims claims của ID token do identity provider cấp
type AdminClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	jwt.RegisteredClaims
}

// AdminAuth xác thực bearer token HS256 và đối chiếu email với danh sách admin
type AdminAuth struct {
	secret []byte
	issuer string
	admins map[string]struct{}
	logger *zap.Logger
}

func NewAdminAuth(cfg config.AuthCfg, logger *zap.Logger) *AdminAuth {
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return &AdminAuth{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		admins: admins,
		logger: logger,
	}
}

// RequireAdmin thiếu/sai token → 401, không phải admin → 403
func (a *AdminAuth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abort(c, http.StatusUnauthorized, responses.CodeUnauthorized, "Thiếu bearer token")
			return
		}

		claims, err := a.Verify(tokenString)
		if err != nil {
			a.logger.Debug("Token không hợp lệ", zap.Error(err), zap.String("request_id", c.GetString(ContextRequestID)))
			abort(c, http.StatusUnauthorized, responses.CodeUnauthorized, "Token không hợp lệ")
			return
		}

		email := strings.ToLower(claims.Email)
		if _, ok := a.admins[email]; !ok {
			a.logger.Warn("Từ chối truy cập admin", zap.String("email", email))
			abort(c, http.StatusForbidden, responses.CodeForbidden, "Tài khoản không có quyền admin")
			return
		}

		c.Set(ContextAdminEmail, email)
		c.Next()
	}
}

// Verify kiểm tra chữ ký, hạn dùng và issuer (nếu cấu hình)
func (a *AdminAuth) Verify(tokenString string) (*AdminClaims, error) {
	if len(a.secret) == 0 {
		return nil, fmt.Errorf("chưa cấu hình auth.jwt_secret")
	}

	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token không hợp lệ")
	}
	if a.issuer != "" && !claims.VerifyIssuer(a.issuer, true) {
		return nil, fmt.Errorf("issuer không khớp: %q", claims.Issuer)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("token thiếu email")
	}
	return claims, nil
}

// IssueToken ký token admin HS256 với cùng secret
func IssueToken(secret []byte, issuer, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Email:         email,
		EmailVerified: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, responses.ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: c.GetString(ContextRequestID),
	})
}
