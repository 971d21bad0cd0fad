package communication

import (
	"context"
	"encoding/json"
	"net"
	"reflect"
	"sync"
	"time"

	communicationpb "github.com/AnishMulay/scatterstore/gen/proto/communication"
	"github.com/AnishMulay/scatterstore/internal/log_service"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DefaultSendTimeout is applied to outgoing calls whose context carries no
// deadline of its own.
const DefaultSendTimeout = 10 * time.Second

type GRPCCommunicator struct {
	listenAddress string
	handler       MessageHandler
	grpcServer    *grpc.Server
	ls            log_service.LogService

	clientLock   sync.RWMutex
	conns        map[string]*grpc.ClientConn
	payloadTypes map[string]reflect.Type
	stopped      bool
	stopMutex    sync.Mutex
}

func NewGRPCCommunicator(addr string, ls log_service.LogService) *GRPCCommunicator {
	c := &GRPCCommunicator{
		listenAddress: addr,
		ls:            ls,
		conns:         make(map[string]*grpc.ClientConn),
		payloadTypes:  make(map[string]reflect.Type),
	}

	// Register default payload types
	c.payloadTypes[MessageTypeSendHeartbeat] = reflect.TypeOf((*SendHeartbeatRequest)(nil)).Elem()
	c.payloadTypes[MessageTypeAssignWorkerForChunk] = reflect.TypeOf((*AssignWorkerForChunkRequest)(nil)).Elem()
	c.payloadTypes[MessageTypeStoreChunk] = reflect.TypeOf((*StoreChunkRequest)(nil)).Elem()
	c.payloadTypes[MessageTypeRetrieveChunk] = reflect.TypeOf((*RetrieveChunkRequest)(nil)).Elem()

	return c
}

func (c *GRPCCommunicator) Address() string {
	return c.listenAddress
}

// RegisterPayloadType lets a server declare how to decode an additional
// message type's payload.
func (c *GRPCCommunicator) RegisterPayloadType(msgType string, payloadType reflect.Type) {
	c.payloadTypes[msgType] = payloadType
}

func (c *GRPCCommunicator) Start(handler MessageHandler) error {
	c.ls.Info(log_service.LogEvent{
		Message:  "Starting GRPC communicator",
		Metadata: map[string]any{"address": c.listenAddress},
	})

	c.handler = handler
	c.grpcServer = grpc.NewServer()
	communicationpb.RegisterMessageServiceServer(c.grpcServer, &grpcServer{comm: c})

	lis, err := net.Listen("tcp", c.listenAddress)
	if err != nil {
		c.ls.Error(log_service.LogEvent{
			Message:  "Failed to listen on address",
			Metadata: map[string]any{"address": c.listenAddress, "error": err.Error()},
		})
		return ErrGRPCListenFailed
	}

	go func() {
		if err := c.grpcServer.Serve(lis); err != nil {
			c.ls.Error(log_service.LogEvent{
				Message:  "GRPC server error",
				Metadata: map[string]any{"address": c.listenAddress, "error": err.Error()},
			})
		}
	}()

	c.ls.Info(log_service.LogEvent{
		Message:  "GRPC communicator started successfully",
		Metadata: map[string]any{"address": c.listenAddress},
	})
	return nil
}

func (c *GRPCCommunicator) Stop() error {
	c.stopMutex.Lock()
	defer c.stopMutex.Unlock()

	if c.stopped {
		return nil
	}

	c.ls.Info(log_service.LogEvent{
		Message:  "Stopping GRPC communicator",
		Metadata: map[string]any{"address": c.listenAddress},
	})

	if c.grpcServer != nil {
		done := make(chan struct{})
		go func() {
			c.grpcServer.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(DefaultSendTimeout):
			c.grpcServer.Stop()
		}
	}

	c.clientLock.Lock()
	for addr, conn := range c.conns {
		_ = conn.Close()
		delete(c.conns, addr)
	}
	c.clientLock.Unlock()

	c.stopped = true
	return nil
}

func (c *GRPCCommunicator) conn(to string) (*grpc.ClientConn, error) {
	c.clientLock.RLock()
	conn, ok := c.conns[to]
	c.clientLock.RUnlock()
	if ok {
		return conn, nil
	}

	c.clientLock.Lock()
	defer c.clientLock.Unlock()
	if conn, ok := c.conns[to]; ok {
		return conn, nil
	}

	c.ls.Debug(log_service.LogEvent{
		Message:  "Creating new GRPC client",
		Metadata: map[string]any{"to": to},
	})

	conn, err := grpc.NewClient(to, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		c.ls.Error(log_service.LogEvent{
			Message:  "Failed to create GRPC client",
			Metadata: map[string]any{"to": to, "error": err.Error()},
		})
		return nil, ErrClientCreateFailed
	}
	c.conns[to] = conn
	return conn, nil
}

// invalidate drops the cached connection for an address after a failed call;
// the next Send re-dials.
func (c *GRPCCommunicator) invalidate(to string) {
	c.clientLock.Lock()
	defer c.clientLock.Unlock()
	if conn, ok := c.conns[to]; ok {
		_ = conn.Close()
		delete(c.conns, to)
	}
}

func (c *GRPCCommunicator) Send(ctx context.Context, to string, msg Message) (*Response, error) {
	c.ls.Debug(log_service.LogEvent{
		Message:  "Sending GRPC message",
		Metadata: map[string]any{"to": to, "type": msg.Type, "from": msg.From},
	})

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultSendTimeout)
		defer cancel()
	}

	conn, err := c.conn(to)
	if err != nil {
		return nil, err
	}

	var payloadBytes []byte
	if msg.Payload != nil {
		payloadBytes, err = json.Marshal(msg.Payload)
		if err != nil {
			c.ls.Error(log_service.LogEvent{
				Message:  "Failed to marshal payload",
				Metadata: map[string]any{"to": to, "type": msg.Type, "error": err.Error()},
			})
			return nil, ErrPayloadMarshalFailed
		}
	}

	client := communicationpb.NewMessageServiceClient(conn)
	resp, err := client.SendMessage(ctx, &communicationpb.MessageRequest{
		From:    msg.From,
		Type:    msg.Type,
		Payload: payloadBytes,
	})
	if err != nil {
		c.invalidate(to)
		c.ls.Error(log_service.LogEvent{
			Message:  "Failed to send GRPC message",
			Metadata: map[string]any{"to": to, "type": msg.Type, "error": err.Error()},
		})
		return nil, ErrMessageSendFailed
	}

	c.ls.Debug(log_service.LogEvent{
		Message:  "GRPC message sent successfully",
		Metadata: map[string]any{"to": to, "type": msg.Type, "responseCode": resp.Code},
	})

	return &Response{
		Code: ScatterCode(resp.Code),
		Body: resp.Body,
	}, nil
}

type grpcServer struct {
	communicationpb.UnimplementedMessageServiceServer
	comm *GRPCCommunicator
}

func (s *grpcServer) SendMessage(ctx context.Context, req *communicationpb.MessageRequest) (*communicationpb.MessageResponse, error) {
	if s.comm.handler == nil {
		s.comm.ls.Error(log_service.LogEvent{
			Message:  "GRPC handler not set",
			Metadata: map[string]any{"from": req.From, "type": req.Type},
		})
		return nil, ErrHandlerNotSet
	}

	s.comm.ls.Debug(log_service.LogEvent{
		Message:  "Received GRPC message",
		Metadata: map[string]any{"from": req.From, "type": req.Type},
	})

	msg := Message{
		From: req.From,
		Type: req.Type,
	}

	if payloadType, exists := s.comm.payloadTypes[req.Type]; exists && len(req.Payload) > 0 {
		payloadPtr := reflect.New(payloadType).Interface()
		if err := json.Unmarshal(req.Payload, payloadPtr); err != nil {
			s.comm.ls.Error(log_service.LogEvent{
				Message:  "Failed to unmarshal payload",
				Metadata: map[string]any{"from": req.From, "type": req.Type, "error": err.Error()},
			})
			return nil, ErrPayloadUnmarshalFailed
		}
		msg.Payload = reflect.ValueOf(payloadPtr).Elem().Interface()
	}

	resp, err := s.comm.handler(ctx, msg)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		resp = &Response{Code: CodeOK}
	}

	return &communicationpb.MessageResponse{
		Code: string(resp.Code),
		Body: resp.Body,
	}, nil
}
