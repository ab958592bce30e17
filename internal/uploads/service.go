package uploads

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/freightline-erp/freightline-erp/internal/actor"
	"github.com/freightline-erp/freightline-erp/internal/rpc"
)

// Presigner is the subset of PresignClient the service needs.
type Presigner interface {
	PreparePut(ctx context.Context, req PrepareRequest) (*PresignedUpload, error)
	PresignGet(ctx context.Context, objectKey string) (*PresignedView, error)
}

// Service drives the prepare / transfer / confirm protocol and the view-URL
// cache for any active actor.
type Service struct {
	presigner Presigner
	cache     *ViewURLCache
	inv       rpc.Invoker
	resolver  *actor.Resolver
	logger    *slog.Logger
	client    *http.Client
	transfer  TransferOptions

	confirmChain rpc.Chain
}

// ServiceConfig tunes the Service.
type ServiceConfig struct {
	Transfer   TransferOptions
	HTTPClient *http.Client
	OnFallback func(procedure string)
}

// NewService constructs a Service.
func NewService(presigner Presigner, cache *ViewURLCache, inv rpc.Invoker, resolver *actor.Resolver, logger *slog.Logger, cfg ServiceConfig) *Service {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 90 * time.Second}
	}
	return &Service{
		presigner: presigner,
		cache:     cache,
		inv:       inv,
		resolver:  resolver,
		logger:    logger,
		client:    client,
		transfer:  cfg.Transfer,
		confirmChain: rpc.Chain{
			Operation:  "uploads.confirm",
			OnFallback: cfg.OnFallback,
			Variants:   []rpc.Variant{{Procedure: "upload_confirm_v1"}},
		},
	}
}

// UploadResult describes a registered object.
type UploadResult struct {
	ObjectKey     string `json:"objectKey"`
	FileName      string `json:"fileName"`
	MimeType      string `json:"mimeType"`
	FileSizeBytes int64  `json:"fileSizeBytes"`
}

// Upload runs the three-phase protocol: prepare a write grant, transfer the
// bytes with retry, confirm the metadata so the backend can link the object.
func (s *Service) Upload(ctx context.Context, fileName, mimeType string, body []byte) (*UploadResult, error) {
	act, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	grant, err := s.presigner.PreparePut(ctx, PrepareRequest{
		FileName:  fileName,
		MimeType:  mimeType,
		SizeBytes: int64(len(body)),
	})
	if err != nil {
		return nil, err
	}

	if err := UploadToPresignedURL(ctx, s.client, grant.URL, body, mimeType, s.transfer); err != nil {
		return nil, err
	}

	args := []rpc.Arg{
		rpc.Named("p_object_key", grant.ObjectKey),
		rpc.Named("p_file_name", fileName),
		rpc.Named("p_mime_type", mimeType),
		rpc.Named("p_file_size_bytes", int64(len(body))),
	}
	if _, err := s.confirmChain.Invoke(ctx, s.inv, act.ID, args); err != nil {
		return nil, err
	}

	return &UploadResult{
		ObjectKey:     grant.ObjectKey,
		FileName:      fileName,
		MimeType:      mimeType,
		FileSizeBytes: int64(len(body)),
	}, nil
}

// ViewURL returns a presigned read URL, memoized through the cache.
func (s *Service) ViewURL(ctx context.Context, objectKey string) (string, error) {
	if _, err := s.resolver.Resolve(ctx); err != nil {
		return "", err
	}
	return s.cache.Get(ctx, objectKey, func(ctx context.Context) (string, error) {
		view, err := s.presigner.PresignGet(ctx, objectKey)
		if err != nil {
			return "", err
		}
		return view.URL, nil
	})
}
