// 标签RPC服务，为内容编辑器提供标签解析、渲染与签名查询
package tagsvc

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"git.fiblab.net/sim/syncer/v3"
	"github.com/JeremyDaug/EconomicCalculator-sub004/tag"
	"github.com/JeremyDaug/EconomicCalculator-sub004/utils"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/types/known/structpb"
)

var log = logrus.WithField("module", "tagsvc")

const (
	// ServiceName 服务全名
	ServiceName = "econcalc.tag.v1.TagService"

	ParseProcedure     = "/" + ServiceName + "/Parse"
	RenderProcedure    = "/" + ServiceName + "/Render"
	SignatureProcedure = "/" + ServiceName + "/Signature"
	ListTagsProcedure  = "/" + ServiceName + "/ListTags"
)

type (
	request  = connect.Request[structpb.Struct]
	response = connect.Response[structpb.Struct]
)

// Server 标签服务
// 说明：只读访问编解码器与实体目录，无状态，可并发调用
type Server struct {
	codec *tag.Codec
}

// NewServer 创建标签服务
func NewServer(codec *tag.Codec) *Server {
	return &Server{codec: codec}
}

// Handler 创建服务的HTTP处理器
// 功能：为每个过程创建connect一元处理器，请求与响应均为structpb.Struct
// 参数：opts-connect处理器选项
// 返回：服务路径前缀与处理器
func (s *Server) Handler(opts ...connect.HandlerOption) (pattern string, handler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(ParseProcedure, connect.NewUnaryHandler(ParseProcedure, s.Parse, opts...))
	mux.Handle(RenderProcedure, connect.NewUnaryHandler(RenderProcedure, s.Render, opts...))
	mux.Handle(SignatureProcedure, connect.NewUnaryHandler(SignatureProcedure, s.Signature, opts...))
	mux.Handle(ListTagsProcedure, connect.NewUnaryHandler(ListTagsProcedure, s.ListTags, opts...))
	return "/" + ServiceName + "/", mux
}

// Register 将TagService注册到sidecar
// 说明：服务不修改任何状态，注册时不加锁
func (s *Server) Register(sidecar *syncer.Sidecar) {
	sidecar.Register(ServiceName, s.Handler, syncer.WithNoLock())
}

// Parse 解析标签字符串
// 请求：{family, text}
// 返回：{family, tag, canonical, parameters: [{type, value}]}，引用参数额外带id
func (s *Server) Parse(ctx context.Context, in *request) (*response, error) {
	f, t, err := s.parse(in.Msg)
	if err != nil {
		return nil, err
	}
	params := lo.Map(t.Values(), func(v tag.Value, _ int) any {
		p := map[string]any{"type": v.Type().String(), "value": v.String()}
		if id, _, ok := v.Reference(); ok {
			p["id"] = id.String()
		}
		return p
	})
	return reply(map[string]any{
		"family":     f.String(),
		"tag":        t.Tag().Name(),
		"canonical":  s.codec.Render(t),
		"parameters": params,
	})
}

// Render 解析后以实体目录中的名称重新渲染
// 请求：{family, text}
// 返回：{canonical}
func (s *Server) Render(ctx context.Context, in *request) (*response, error) {
	_, t, err := s.parse(in.Msg)
	if err != nil {
		return nil, err
	}
	return reply(map[string]any{"canonical": s.codec.Render(t)})
}

// Signature 查询标签签名
// 请求：{family, tag}
// 返回：{tag, parameters: [type...], pattern, example}；标签不存在时为NotFound
func (s *Server) Signature(ctx context.Context, in *request) (*response, error) {
	f, err := family(in.Msg)
	if err != nil {
		return nil, err
	}
	name := field(in.Msg, "tag")
	k, ok := tag.Lookup(f, name)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("no tag %q in family %s", name, f))
	}
	return reply(map[string]any{
		"tag": k.Name(),
		"parameters": lo.Map(k.Signature(), func(t tag.ParameterType, _ int) any {
			return t.String()
		}),
		"pattern": tag.Regex(k),
		"example": tag.ExampleTag(k),
	})
}

// ListTags 列出实体族中的标签
// 请求：{family, tags?}，tags为空时列出全部
// 返回：{tags: [name...], unknown: [name...]}
func (s *Server) ListTags(ctx context.Context, in *request) (*response, error) {
	f, err := family(in.Msg)
	if err != nil {
		return nil, err
	}
	kinds := tag.Kinds(f)
	byName := lo.SliceToMap(kinds, func(k tag.Kind) (string, tag.Kind) { return k.Name(), k })
	names := lo.FilterMap(in.Msg.GetFields()["tags"].GetListValue().GetValues(), func(v *structpb.Value, _ int) (string, bool) {
		return v.GetStringValue(), v.GetStringValue() != ""
	})
	found, unknown := utils.Find(byName, kinds, names)
	return reply(map[string]any{
		"tags":    lo.Map(found, func(k tag.Kind, _ int) any { return k.Name() }),
		"unknown": lo.Map(unknown, func(n string, _ int) any { return n }),
	})
}

func (s *Server) parse(msg *structpb.Struct) (tag.Family, tag.AttachedTag, error) {
	f, err := family(msg)
	if err != nil {
		return 0, tag.AttachedTag{}, err
	}
	text := field(msg, "text")
	t, err := s.codec.Parse(f, text)
	if err != nil {
		log.Debugf("parse %s %q: %v", f, text, err)
		var te *tag.Error
		if errors.As(err, &te) {
			err = fmt.Errorf("%w (%s)", err, te.Hint())
		}
		return 0, tag.AttachedTag{}, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return f, t, nil
}

func family(msg *structpb.Struct) (tag.Family, error) {
	f, err := tag.ParseFamily(field(msg, "family"))
	if err != nil {
		return 0, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return f, nil
}

func field(msg *structpb.Struct, name string) string {
	return msg.GetFields()[name].GetStringValue()
}

func reply(m map[string]any) (*response, error) {
	msg, err := structpb.NewStruct(m)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(msg), nil
}
