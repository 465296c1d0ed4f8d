package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Saimongu007/Breez/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// OSSUploader defines the interface for OSS operations
type OSSUploader interface {
	UploadFile(localPath string) (string, error)
}

// STSClientManager handles STS token management and OSS client creation
type STSClientManager struct {
	config *config.Config
}

func NewSTSClientManager() *STSClientManager {
	cfg, _ := config.LoadConfig()
	return &STSClientManager{config: cfg}
}

// UploadWithSTS uploads a local file to the bucket under a generated
// resources/YYYY/MM/uuid.ext key and returns the public URL. Files over
// 100MB go through multipart upload.
func (m *STSClientManager) UploadWithSTS(localPath string) (string, error) {
	stsCreds, err := GetOSSTSToken()
	if err != nil {
		return "", fmt.Errorf("failed to get STS token: %v", err)
	}

	client, err := oss.New(
		m.config.OSSEndpoint,
		stsCreds.AccessKeyId,
		stsCreds.AccessKeySecret,
		oss.SecurityToken(stsCreds.SecurityToken),
		oss.Timeout(60, 120), // Connect timeout 60s, Read/Write timeout 120s
	)
	if err != nil {
		return "", fmt.Errorf("failed to create OSS client: %v", err)
	}

	bucket, err := client.Bucket(m.config.OSSBucketName)
	if err != nil {
		return "", fmt.Errorf("failed to get bucket: %v", err)
	}

	ext := ""
	if idx := strings.LastIndex(localPath, "."); idx != -1 {
		ext = localPath[idx:]
	}
	now := time.Now()
	objectKey := fmt.Sprintf("resources/%d/%02d/%s%s",
		now.Year(), now.Month(), uuid.New().String(), ext)

	fileInfo, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %v", err)
	}

	const MultipartThreshold = 100 * 1024 * 1024 // 100MB

	var uploadErr error
	if fileInfo.Size() > MultipartThreshold {
		uploadErr = bucket.UploadFile(objectKey, localPath, 1024*1024, oss.Routines(3), oss.Checkpoint(true, ""))
	} else {
		uploadErr = bucket.PutObjectFromFile(objectKey, localPath)
	}

	// Token may have expired mid-upload, refresh once and retry
	if uploadErr != nil {
		fmt.Printf("Upload failed, retrying once... Error: %v\n", uploadErr)
		stsCreds, err = GetOSSTSToken()
		if err == nil {
			client, _ = oss.New(m.config.OSSEndpoint, stsCreds.AccessKeyId, stsCreds.AccessKeySecret, oss.SecurityToken(stsCreds.SecurityToken))
			bucket, _ = client.Bucket(m.config.OSSBucketName)
			if fileInfo.Size() > MultipartThreshold {
				uploadErr = bucket.UploadFile(objectKey, localPath, 1024*1024, oss.Routines(3), oss.Checkpoint(true, ""))
			} else {
				uploadErr = bucket.PutObjectFromFile(objectKey, localPath)
			}
		}
	}

	if uploadErr != nil {
		return "", fmt.Errorf("upload failed after retry: %v", uploadErr)
	}

	endpoint := m.config.OSSEndpoint
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "https://" + endpoint
	}

	url := ""
	if strings.Contains(endpoint, "://") {
		parts := strings.Split(endpoint, "://")
		url = fmt.Sprintf("%s://%s.%s/%s", parts[0], m.config.OSSBucketName, parts[1], objectKey)
	} else {
		url = fmt.Sprintf("https://%s.%s/%s", m.config.OSSBucketName, endpoint, objectKey)
	}

	return url, nil
}
