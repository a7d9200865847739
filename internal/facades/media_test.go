package facades

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaS3Facade_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixed := time.Date(2025, time.September, 6, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		file    *models.MediaFile
		putErr  error
		wantErr bool
	}{
		{
			name: "success",
			file: &models.MediaFile{Filename: "Me.PNG", ContentType: "image/png", Size: 3, Content: strings.NewReader("png")},
		},
		{
			name:    "put fails",
			file:    &models.MediaFile{Filename: "me.png", Content: strings.NewReader("png")},
			putErr:  errors.New("access denied"),
			wantErr: true,
		},
		{
			name:    "no file",
			file:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewMockObjectPutter(ctrl)
			f := NewMediaS3Facade(client, "media", "http://localhost:9000/", time.Second)
			f.now = func() time.Time { return fixed }

			if tt.file != nil {
				client.EXPECT().
					PutObject(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
						_, hasDeadline := ctx.Deadline()
						assert.True(t, hasDeadline, "upload must be bounded")
						assert.Equal(t, "media", aws.ToString(in.Bucket))
						assert.True(t, strings.HasPrefix(aws.ToString(in.Key), "avatars/2025/09/06/"))
						assert.True(t, strings.HasSuffix(aws.ToString(in.Key), ".png"))
						return &s3.PutObjectOutput{}, tt.putErr
					})
			}

			url, err := f.Upload(context.Background(), "avatars", tt.file)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, url)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(url, "http://localhost:9000/media/avatars/2025/09/06/"))
		})
	}
}

func TestNewS3Client(t *testing.T) {
	orig := loadDefaultAWSConfig
	defer func() { loadDefaultAWSConfig = orig }()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	client, err := NewS3Client(context.Background(), "http://localhost:9000", "us-east-1", "key", "secret")
	assert.EqualError(t, err, "load-fail")
	assert.Nil(t, client)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{Region: "us-east-1"}, nil
	}
	client, err = NewS3Client(context.Background(), "http://localhost:9000", "us-east-1", "key", "secret")
	assert.NoError(t, err)
	assert.NotNil(t, client)
}
