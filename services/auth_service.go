package services

import (
	"errors"
	"time"

	"github.com/askadauletbek-ux/sola/config"
	"github.com/askadauletbek-ux/sola/models"
	"github.com/askadauletbek-ux/sola/utils"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Sex      string `json:"sex"`
	Birthday string `json:"birthday"` // "2006-01-02"
	Goal     string `json:"goal"`     // lose_fat | gain_muscle
}

func RegisterUser(in RegisterInput) (*models.User, error) {
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    in.Email,
		Password: hashed,
		Name:     in.Name,
		Sex:      in.Sex,
		Goal:     in.Goal,
	}
	if in.Birthday != "" {
		if bd, err := time.Parse("2006-01-02", in.Birthday); err == nil {
			user.Birthday = bd
		}
	}

	if err := config.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser checks credentials and returns a signed JWT.
func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", errors.New("user not found")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}
	return utils.GenerateJWT(user.ID, user.Email)
}
