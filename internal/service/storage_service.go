package service

import (
	"assessment_engine/internal/config"
	"assessment_engine/internal/util"
	"assessment_engine/pkg/logger"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const defaultLinkTTL = time.Hour

// ObjectStore 导出文件的存放位置
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Remove(ctx context.Context, key string) error
	// Link 下载地址；远端存储返回限时签名地址
	Link(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// LocalStore 写入本地目录，由 /uploads 静态路由提供下载
type LocalStore struct {
	Root string
}

func (s *LocalStore) file(key string) string {
	return filepath.Join(s.Root, filepath.FromSlash(key))
}

func (s *LocalStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	dst := s.file(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, body, 0644)
}

func (s *LocalStore) Remove(ctx context.Context, key string) error {
	err := os.Remove(s.file(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *LocalStore) Link(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return path.Join("/uploads", key), nil
}

// MinioStore 私有桶，通过预签名地址下载
type MinioStore struct {
	Client *minio.Client
	Bucket string
}

func NewMinioStore(cfg *config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
		// 指定 region 后签名无需查询桶位置
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{Client: client, Bucket: cfg.MinioBucket}, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.Client.PutObject(ctx, s.Bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *MinioStore) Remove(ctx context.Context, key string) error {
	return s.Client.RemoveObject(ctx, s.Bucket, key, minio.RemoveObjectOptions{})
}

func (s *MinioStore) Link(ctx context.Context, key string, ttl time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	u, err := s.Client.PresignedGetObject(ctx, s.Bucket, key, ttl, params)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// OSSStore 阿里云 OSS，签名地址下载
type OSSStore struct {
	Bucket *oss.Bucket
}

func NewOSSStore(cfg *config.StorageConfig) (*OSSStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSStore{Bucket: bucket}, nil
}

func (s *OSSStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	return s.Bucket.PutObject(key, bytes.NewReader(body), oss.ContentType(contentType), oss.WithContext(ctx))
}

func (s *OSSStore) Remove(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSStore) Link(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return s.Bucket.SignURL(key, oss.HTTPGet, int64(ttl/time.Second))
}

// StorageService 发布导出文件；远端存储初始化失败时回落到本地目录
type StorageService struct {
	Store   ObjectStore
	LinkTTL time.Duration
}

func NewStorageService(cfg *config.Config) *StorageService {
	svc := &StorageService{LinkTTL: time.Duration(cfg.Storage.LinkTTLMinutes) * time.Minute}
	if svc.LinkTTL <= 0 {
		svc.LinkTTL = defaultLinkTTL
	}

	switch cfg.Storage.Type {
	case util.StorageMinio:
		store, err := NewMinioStore(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("minio storage unavailable, using local storage", zap.Error(err))
		} else {
			svc.Store = store
		}
	case util.StorageOSS:
		store, err := NewOSSStore(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("oss storage unavailable, using local storage", zap.Error(err))
		} else {
			svc.Store = store
		}
	}
	if svc.Store == nil {
		svc.Store = &LocalStore{Root: cfg.Storage.LocalPath}
	}
	return svc
}

// Publish 写入对象并返回下载地址；生成地址失败时删除已写入的对象
func (s *StorageService) Publish(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if err := s.Store.Put(ctx, key, body, contentType); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	link, err := s.Store.Link(ctx, key, s.LinkTTL)
	if err != nil {
		if rmErr := s.Store.Remove(ctx, key); rmErr != nil {
			logger.Log.Warn("Failed to remove unpublished object", zap.String("key", key), zap.Error(rmErr))
		}
		return "", fmt.Errorf("link %s: %w", key, err)
	}
	return link, nil
}
