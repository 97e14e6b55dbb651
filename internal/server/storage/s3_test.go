package storage

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Bucket:       "petswap-images",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		Expiry:       5 * time.Minute,
	}
}

func TestPresignPut_SignsPathStyleURL(t *testing.T) {
	p, err := NewS3Presigner(context.Background(), testOptions())
	require.NoError(t, err)

	raw, err := p.PresignPut(context.Background(), "properties/1/abc")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/petswap-images/properties/1/abc", u.Path)

	q := u.Query()
	assert.Equal(t, "300", q.Get("X-Amz-Expires"))
	assert.NotEmpty(t, q.Get("X-Amz-Signature"))
	assert.True(t, strings.HasPrefix(q.Get("X-Amz-Credential"), "minioadmin/"))
}

func TestNewS3Presigner_Errors(t *testing.T) {
	o := testOptions()
	o.Bucket = ""
	_, err := NewS3Presigner(context.Background(), o)
	require.Error(t, err)

	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err = NewS3Presigner(context.Background(), testOptions())
	require.ErrorContains(t, err, "no config")
}

func TestPresignPut_Error(t *testing.T) {
	p, err := NewS3Presigner(context.Background(), testOptions())
	require.NoError(t, err)

	orig := presignPutObject
	t.Cleanup(func() { presignPutObject = orig })
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign failed")
	}

	_, err = p.PresignPut(context.Background(), "k")
	require.ErrorContains(t, err, "sign failed")
}

func TestPropertyImageKey(t *testing.T) {
	a := PropertyImageKey(12)
	b := PropertyImageKey(12)

	assert.Regexp(t, regexp.MustCompile(`^properties/12/[0-9a-f-]{36}$`), a)
	assert.NotEqual(t, a, b)
}
