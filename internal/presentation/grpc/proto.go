package grpc

// proto.go defines the ScoringService server and client by hand. Messages are
// the application DTOs carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/agriscore/internal/application/dto"
	"github.com/bibbank/agriscore/internal/domain/model"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "agriscore.v1.ScoringService"

// Message types.
type (
	HealthRequest           struct{}
	RetrainModelRequest     struct{}
	HealthResponse          = dto.HealthResponse
	CreditScoreRequest      = dto.CreditScoreRequest
	CreditScoreResponse     = dto.CreditScoreResponse
	LoanRiskRequest         = dto.LoanRiskRequest
	LoanRiskResponse        = dto.LoanRiskResponse
	YieldPredictionRequest  = dto.YieldPredictionRequest
	YieldPredictionResponse = dto.YieldPredictionResponse
	RetrainModelResponse    = dto.RetrainResponse
)

// ScoringServiceServer is the server API for ScoringService.
type ScoringServiceServer interface {
	Health(context.Context, *HealthRequest) (*HealthResponse, error)
	CreditScore(context.Context, *CreditScoreRequest) (*CreditScoreResponse, error)
	LoanRisk(context.Context, *LoanRiskRequest) (*LoanRiskResponse, error)
	YieldPrediction(context.Context, *YieldPredictionRequest) (*YieldPredictionResponse, error)
	RetrainModel(context.Context, *RetrainModelRequest) (*RetrainModelResponse, error)
	mustEmbedUnimplementedScoringServiceServer()
}

// UnimplementedScoringServiceServer provides forward-compatible default implementations.
type UnimplementedScoringServiceServer struct{}

func (UnimplementedScoringServiceServer) Health(context.Context, *HealthRequest) (*HealthResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Health not implemented")
}
func (UnimplementedScoringServiceServer) CreditScore(context.Context, *CreditScoreRequest) (*CreditScoreResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreditScore not implemented")
}
func (UnimplementedScoringServiceServer) LoanRisk(context.Context, *LoanRiskRequest) (*LoanRiskResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method LoanRisk not implemented")
}
func (UnimplementedScoringServiceServer) YieldPrediction(context.Context, *YieldPredictionRequest) (*YieldPredictionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method YieldPrediction not implemented")
}
func (UnimplementedScoringServiceServer) RetrainModel(context.Context, *RetrainModelRequest) (*RetrainModelResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RetrainModel not implemented")
}
func (UnimplementedScoringServiceServer) mustEmbedUnimplementedScoringServiceServer() {}

// RegisterScoringServiceServer registers srv with the gRPC server.
func RegisterScoringServiceServer(s grpclib.ServiceRegistrar, srv ScoringServiceServer) {
	s.RegisterService(&scoringServiceDesc, srv)
}

var scoringServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ScoringServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Health", Handler: unaryHandler("Health", func(s ScoringServiceServer, ctx context.Context, in *HealthRequest) (any, error) {
			return s.Health(ctx, in)
		})},
		{MethodName: "CreditScore", Handler: unaryHandler("CreditScore", func(s ScoringServiceServer, ctx context.Context, in *CreditScoreRequest) (any, error) {
			return s.CreditScore(ctx, in)
		})},
		{MethodName: "LoanRisk", Handler: unaryHandler("LoanRisk", func(s ScoringServiceServer, ctx context.Context, in *LoanRiskRequest) (any, error) {
			return s.LoanRisk(ctx, in)
		})},
		{MethodName: "YieldPrediction", Handler: unaryHandler("YieldPrediction", func(s ScoringServiceServer, ctx context.Context, in *YieldPredictionRequest) (any, error) {
			return s.YieldPrediction(ctx, in)
		})},
		{MethodName: "RetrainModel", Handler: unaryHandler("RetrainModel", func(s ScoringServiceServer, ctx context.Context, in *RetrainModelRequest) (any, error) {
			return s.RetrainModel(ctx, in)
		})},
	},
	Streams: []grpclib.StreamDesc{},
}

// unaryHandler builds the method handler for one RPC.
func unaryHandler[Req any](
	method string,
	call func(ScoringServiceServer, context.Context, *Req) (any, error),
) grpclib.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "%v: %s", model.ErrInvalidInput, status.Convert(err).Message())
		}
		if interceptor == nil {
			return call(srv.(ScoringServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ScoringServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ScoringServiceClient is the client API for ScoringService.
type ScoringServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewScoringServiceClient creates a client that speaks the JSON codec.
func NewScoringServiceClient(cc grpclib.ClientConnInterface) *ScoringServiceClient {
	return &ScoringServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpclib.ClientConnInterface, method string, in any, opts []grpclib.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(jsonCodec{}.Name())}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Health calls ScoringService.Health.
func (c *ScoringServiceClient) Health(ctx context.Context, in *HealthRequest, opts ...grpclib.CallOption) (*HealthResponse, error) {
	return invoke[HealthResponse](ctx, c.cc, "Health", in, opts)
}

// CreditScore calls ScoringService.CreditScore.
func (c *ScoringServiceClient) CreditScore(ctx context.Context, in *CreditScoreRequest, opts ...grpclib.CallOption) (*CreditScoreResponse, error) {
	return invoke[CreditScoreResponse](ctx, c.cc, "CreditScore", in, opts)
}

// LoanRisk calls ScoringService.LoanRisk.
func (c *ScoringServiceClient) LoanRisk(ctx context.Context, in *LoanRiskRequest, opts ...grpclib.CallOption) (*LoanRiskResponse, error) {
	return invoke[LoanRiskResponse](ctx, c.cc, "LoanRisk", in, opts)
}

// YieldPrediction calls ScoringService.YieldPrediction.
func (c *ScoringServiceClient) YieldPrediction(ctx context.Context, in *YieldPredictionRequest, opts ...grpclib.CallOption) (*YieldPredictionResponse, error) {
	return invoke[YieldPredictionResponse](ctx, c.cc, "YieldPrediction", in, opts)
}

// RetrainModel calls ScoringService.RetrainModel.
func (c *ScoringServiceClient) RetrainModel(ctx context.Context, in *RetrainModelRequest, opts ...grpclib.CallOption) (*RetrainModelResponse, error) {
	return invoke[RetrainModelResponse](ctx, c.cc, "RetrainModel", in, opts)
}
