// gRPC transport boundary: a Manager that owns the listener, the
// Scheduler service, and the standard gRPC health-check service.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
//
// Grounded on go-kgp's proto/manage.go Listener: a conf.Manager that
// owns its own net.Listener and is brought up/down by conf.Conf.Start.
package rpc

import (
	"fmt"
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"leaguesched/internal/conf"
)

// Server is the gRPC listener Manager.
type Server struct {
	conf     *conf.Conf
	listener net.Listener
	grpcSrv  *grpc.Server
	health   *health.Server
	port     uint
}

func (*Server) String() string { return "gRPC scheduling service" }

// Start accepts connections until Shutdown is called.
func (s *Server) Start() {
	s.conf.Debug.Printf("accepting gRPC connections on :%d", s.port)
	if err := s.grpcSrv.Serve(s.listener); err != nil {
		s.conf.Log.Print(err)
	}
}

// Shutdown stops accepting new RPCs and waits for in-flight ones to
// finish.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.grpcSrv.GracefulStop()
}

// Register binds scheduler to the Scheduler service, wires JWT auth from
// c.RPC.JWKSURL, and registers the resulting Server as a conf.Manager.
func Register(c *conf.Conf, scheduler Scheduler) *Server {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", c.RPC.Port))
	if err != nil {
		log.Fatal(err)
	}

	var opts []grpc.ServerOption
	if c.RPC.JWKSURL != "" {
		opts = append(opts, grpc.StreamInterceptor(streamAuthInterceptor(NewVerifier(c.RPC.JWKSURL))))
	}

	grpcSrv := grpc.NewServer(opts...)
	grpcSrv.RegisterService(&ServiceDesc, scheduler)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	s := &Server{
		conf:     c,
		listener: lis,
		grpcSrv:  grpcSrv,
		health:   healthSrv,
		port:     c.RPC.Port,
	}
	c.Register(s)
	return s
}
