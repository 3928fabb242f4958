package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinsync/triage-api/schema"
)

const tokenLifetime = 12 * time.Hour

// requestJWT exchanges a username and credential for a bearer token. Only
// accounts that are both approved and active may sign in.
func (s *Server) requestJWT(c *gin.Context) {
	var req struct {
		Username   string `json:"username"`
		Credential string `json:"credential"`
	}

	if err := c.BindJSON(&req); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	account, err := s.store.GetAccountByUsername(req.Username)
	if err != nil {
		abortWithEncoding(c, http.StatusUnauthorized, errorInvalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Credential), []byte(req.Credential)); err != nil {
		abortWithEncoding(c, http.StatusUnauthorized, errorInvalidCredentials)
		return
	}

	if !account.CanSignIn() {
		abortWithEncoding(c, http.StatusForbidden, errorAccountNotUsable)
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  account.ID,
		"role": string(account.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenLifetime).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jwt_token":  signed,
		"expire_in":  int64(tokenLifetime.Seconds()),
		"account_id": account.ID,
		"role":       account.Role,
	})
}

func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authorization := c.GetHeader("Authorization")
		if !strings.HasPrefix(authorization, "Bearer ") {
			abortWithEncoding(c, http.StatusUnauthorized, errorInvalidAuthorizationFormat)
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(authorization, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			abortWithEncoding(c, http.StatusUnauthorized, errorInvalidToken, err)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWithEncoding(c, http.StatusUnauthorized, errorInvalidToken)
			return
		}

		uid, _ := claims["uid"].(string)
		role, _ := claims["role"].(string)
		if uid == "" {
			abortWithEncoding(c, http.StatusUnauthorized, errorInvalidToken)
			return
		}

		c.Set("requester", uid)
		c.Set("role", role)
		c.Next()
	}
}

func (s *Server) adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != string(schema.RoleAdministrator) {
			abortWithEncoding(c, http.StatusForbidden, errorAdminRequired)
			return
		}
		c.Next()
	}
}
