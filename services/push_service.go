package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/askadauletbek-ux/sola/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"gorm.io/gorm"
)

// PushService delivers mobile pushes through SNS platform endpoints.
// Delivery is best effort: a failed publish is logged and forgotten,
// never surfaced to the chat flow.
type PushService struct {
	db             *gorm.DB
	sns            *awssns.Client
	fcmPlatformArn string
}

func NewPushService(db *gorm.DB) (*PushService, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "eu-central-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &PushService{
		db:             db,
		sns:            awssns.NewFromConfig(cfg),
		fcmPlatformArn: os.Getenv("SNS_FCM_ARN"),
	}, nil
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

// RegisterDevice creates (or refreshes) the SNS endpoint for a device
// token and upserts the device row keyed by its token hash.
func (p *PushService) RegisterDevice(userID uint, platform, token string) (*models.UserDevice, error) {
	platform = strings.ToLower(platform)
	if platform != "android" && platform != "ios" {
		return nil, errors.New("unknown platform")
	}
	if p.fcmPlatformArn == "" {
		return nil, errors.New("SNS_FCM_ARN not set")
	}

	out, err := p.sns.CreatePlatformEndpoint(context.TODO(), &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.fcmPlatformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev := &models.UserDevice{
		UserID:      userID,
		Platform:    platform,
		TokenHash:   tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		UpdatedAt:   time.Now(),
	}

	var existing models.UserDevice
	if err := p.db.Where("user_id = ? AND token_hash = ?", userID, dev.TokenHash).First(&existing).Error; err == nil {
		existing.EndpointARN = dev.EndpointARN
		existing.Platform = dev.Platform
		existing.UpdatedAt = time.Now()
		_ = p.db.Save(&existing).Error
		return &existing, nil
	}
	_ = p.db.Create(dev).Error
	return dev, nil
}

// PushToUser fans a notification out to every enabled device endpoint.
func (p *PushService) PushToUser(userID uint, title, body string, data map[string]string) {
	var devices []models.UserDevice
	if err := p.db.Where("user_id = ? AND enabled = ?", userID, true).Find(&devices).Error; err != nil {
		return
	}
	if len(devices) == 0 {
		return
	}

	msg := map[string]any{
		"default": body,
		"GCM": map[string]any{
			"notification": map[string]string{"title": title, "body": body},
			"data":         data,
		},
	}
	raw, _ := json.Marshal(msg)

	for _, d := range devices {
		if _, err := p.sns.Publish(context.TODO(), &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		}); err != nil {
			log.Printf("sns publish to device %d failed: %v", d.ID, err)
		}
	}
}
