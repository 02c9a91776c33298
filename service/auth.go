package service

import (
	"fmt"
	"net/http"
	"strings"

	"dcim/dao/model"
	"dcim/dao/query"
	"dcim/response"
	"dcim/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginReq struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	Role         model.Role `json:"role"`
}

func RegisterAuth(g *gin.RouterGroup) {
	g.POST("/login", Login)
}

func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	var user model.User
	if err := query.DB.Where("name = ?", req.Name).First(&user).Error; err != nil {
		response.HTTPError(c, http.StatusUnauthorized, "invalid name or password", response.UserNotFound)
		return
	}
	if user.Password == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)) != nil {
		response.HTTPError(c, http.StatusUnauthorized, "invalid name or password", response.UserNotFound)
		return
	}
	access, refresh, err := util.GetTokenMgr().CreateTokens(&util.JWTMessage{
		UserID:   user.ID,
		Username: user.Name,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, LoginResp{AccessToken: access, RefreshToken: refresh, Role: user.Role})
}

// CheckJWTToken validates the Authorization header and returns the token
// payload.
func CheckJWTToken(c *gin.Context) (util.JWTMessage, error) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return util.JWTMessage{}, fmt.Errorf("missing bearer token")
	}
	msg, err := util.GetTokenMgr().CheckToken(token)
	if err != nil {
		return util.JWTMessage{}, fmt.Errorf("invalid token: %w", err)
	}
	return msg, nil
}

const contextUserKey = "jwtUser"

// AuthRequired rejects requests without a valid token and stores the
// payload on the context for the handlers.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		msg, err := CheckJWTToken(c)
		if err != nil {
			response.HTTPError(c, http.StatusUnauthorized, err.Error(), response.InvalidToken)
			c.Abort()
			return
		}
		c.Set(contextUserKey, msg)
		c.Next()
	}
}

func currentUser(c *gin.Context) util.JWTMessage {
	if v, ok := c.Get(contextUserKey); ok {
		if msg, ok := v.(util.JWTMessage); ok {
			return msg
		}
	}
	return util.JWTMessage{}
}
