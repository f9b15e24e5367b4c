package grpc

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

const (
	Overlingo_SignIn_FullMethodName         = "/overlingo.Overlingo/SignIn"
	Overlingo_DetectText_FullMethodName     = "/overlingo.Overlingo/DetectText"
	Overlingo_TranslateText_FullMethodName  = "/overlingo.Overlingo/TranslateText"
	Overlingo_RetypesetImage_FullMethodName = "/overlingo.Overlingo/RetypesetImage"
)

// OverlingoClient is the client API for the Overlingo service. Every call is
// sent with the JSON codec.
type OverlingoClient interface {
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error)
	DetectText(ctx context.Context, in *DetectTextRequest, opts ...grpc.CallOption) (*DetectTextResponse, error)
	TranslateText(ctx context.Context, in *TranslateTextRequest, opts ...grpc.CallOption) (*TranslateTextResponse, error)
	RetypesetImage(ctx context.Context, in *RetypesetImageRequest, opts ...grpc.CallOption) (*RetypesetImageResponse, error)
}

type overlingoClient struct {
	cc grpc.ClientConnInterface
}

func NewOverlingoClient(cc grpc.ClientConnInterface) OverlingoClient {
	return &overlingoClient{cc}
}

func (c *overlingoClient) invoke(ctx context.Context, method string, in any, out any, opts []grpc.CallOption) error {
	return c.cc.Invoke(ctx, method, in, out, append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)...)
}

func (c *overlingoClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	out := new(SignInResponse)
	if err := c.invoke(ctx, Overlingo_SignIn_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlingoClient) DetectText(ctx context.Context, in *DetectTextRequest, opts ...grpc.CallOption) (*DetectTextResponse, error) {
	out := new(DetectTextResponse)
	if err := c.invoke(ctx, Overlingo_DetectText_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlingoClient) TranslateText(ctx context.Context, in *TranslateTextRequest, opts ...grpc.CallOption) (*TranslateTextResponse, error) {
	out := new(TranslateTextResponse)
	if err := c.invoke(ctx, Overlingo_TranslateText_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlingoClient) RetypesetImage(ctx context.Context, in *RetypesetImageRequest, opts ...grpc.CallOption) (*RetypesetImageResponse, error) {
	out := new(RetypesetImageResponse)
	if err := c.invoke(ctx, Overlingo_RetypesetImage_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// OverlingoServer is the server API for the Overlingo service.
// Implementations must embed UnimplementedOverlingoServer.
type OverlingoServer interface {
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	DetectText(context.Context, *DetectTextRequest) (*DetectTextResponse, error)
	TranslateText(context.Context, *TranslateTextRequest) (*TranslateTextResponse, error)
	RetypesetImage(context.Context, *RetypesetImageRequest) (*RetypesetImageResponse, error)
	mustEmbedUnimplementedOverlingoServer()
}

type UnimplementedOverlingoServer struct{}

func (UnimplementedOverlingoServer) SignIn(context.Context, *SignInRequest) (*SignInResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SignIn not implemented")
}
func (UnimplementedOverlingoServer) DetectText(context.Context, *DetectTextRequest) (*DetectTextResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DetectText not implemented")
}
func (UnimplementedOverlingoServer) TranslateText(context.Context, *TranslateTextRequest) (*TranslateTextResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method TranslateText not implemented")
}
func (UnimplementedOverlingoServer) RetypesetImage(context.Context, *RetypesetImageRequest) (*RetypesetImageResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RetypesetImage not implemented")
}
func (UnimplementedOverlingoServer) mustEmbedUnimplementedOverlingoServer() {}

// RegisterOverlingoServer registers srv. The grpc.Server must be created with
// grpc.ForceServerCodec(Codec{}) or receive calls using the "json" content subtype.
func RegisterOverlingoServer(s grpc.ServiceRegistrar, srv OverlingoServer) {
	s.RegisterService(&Overlingo_ServiceDesc, srv)
}

func _Overlingo_SignIn_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SignInRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlingoServer).SignIn(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Overlingo_SignIn_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OverlingoServer).SignIn(ctx, req.(*SignInRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Overlingo_DetectText_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DetectTextRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlingoServer).DetectText(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Overlingo_DetectText_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OverlingoServer).DetectText(ctx, req.(*DetectTextRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Overlingo_TranslateText_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TranslateTextRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlingoServer).TranslateText(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Overlingo_TranslateText_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OverlingoServer).TranslateText(ctx, req.(*TranslateTextRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Overlingo_RetypesetImage_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RetypesetImageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlingoServer).RetypesetImage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Overlingo_RetypesetImage_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OverlingoServer).RetypesetImage(ctx, req.(*RetypesetImageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var Overlingo_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "overlingo.Overlingo",
	HandlerType: (*OverlingoServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SignIn",
			Handler:    _Overlingo_SignIn_Handler,
		},
		{
			MethodName: "DetectText",
			Handler:    _Overlingo_DetectText_Handler,
		},
		{
			MethodName: "TranslateText",
			Handler:    _Overlingo_TranslateText_Handler,
		},
		{
			MethodName: "RetypesetImage",
			Handler:    _Overlingo_RetypesetImage_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
}
