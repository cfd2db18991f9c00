package auth

import (
	"time"

	"crux/config"
	"crux/repository"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carry every identity authenticated by the session. A parent logging
// in several children at once gets all their ids in one token; the first id
// is the acting identity for single-login flows.
type Claims struct {
	ClimberIds []int  `json:"climber_ids"`
	Role       string `json:"role"`
	Exp        int64  `json:"exp"`
}

func (claims *Claims) FromJWTClaims(jwtClaims jwt.Claims) {
	climberIds := []int{}
	if jwtClaims.(jwt.MapClaims)["climber_ids"] != nil {
		for _, id := range jwtClaims.(jwt.MapClaims)["climber_ids"].([]interface{}) {
			climberIds = append(climberIds, int(id.(float64)))
		}
	}
	claims.ClimberIds = climberIds
	if role, ok := jwtClaims.(jwt.MapClaims)["role"].(string); ok {
		claims.Role = role
	}
	claims.Exp = int64(jwtClaims.(jwt.MapClaims)["exp"].(float64))
}

func (claims *Claims) Valid() error {
	if time.Now().Unix() > claims.Exp {
		return jwt.ErrTokenExpired
	}
	return nil
}

func (claims *Claims) ClimberId() int {
	if len(claims.ClimberIds) == 0 {
		return 0
	}
	return claims.ClimberIds[0]
}

func (claims *Claims) IsStaff() bool {
	return claims.Role == string(repository.RoleAdmin) || claims.Role == string(repository.RoleSetter)
}

func CreateToken(climbers []*repository.Climber, role repository.Role) (string, error) {
	climberIds := make([]int, len(climbers))
	for i, climber := range climbers {
		climberIds[i] = climber.Id
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"climber_ids": climberIds,
			"role":        string(role),
			"exp":         time.Now().Add(time.Hour * 24).Unix(),
		})

	tokenString, err := token.SignedString([]byte(config.Env().JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Env().JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}
	return token, nil
}
