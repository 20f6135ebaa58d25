// Hand-registered gRPC service descriptor for the scheduling RPC: one
// bidirectional stream, one ScheduledInput per region in, one Output per
// region out, no protoc step.
//
// Copyright (c) 2024  The league-scheduler contributors
//
// This file is part of league-scheduler, adapted from go-kgp, which is
// free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License, version 3, as
// published by the Free Software Foundation.
package rpc

import (
	"context"
	"io"

	"google.golang.org/grpc"

	league "leaguesched"
)

// Scheduler computes an Output for a single region's ScheduledInput.
// schedule.Facade implements this.
type Scheduler interface {
	Schedule(ctx context.Context, in *league.ScheduledInput) (*league.Output, error)
}

const serviceName = "leaguesched.Scheduler"

// ServiceDesc describes the Scheduler service to grpc.Server.RegisterService.
// There is no .proto file: messages are plain league.ScheduledInput /
// league.Output values carried by the json codec registered in codec.go.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*Scheduler)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Schedule",
			Handler:       scheduleStreamHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "leaguesched/rpc",
}

func scheduleStreamHandler(srv interface{}, stream grpc.ServerStream) error {
	scheduler := srv.(Scheduler)

	for {
		var in league.ScheduledInput
		if err := stream.RecvMsg(&in); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		out, err := scheduler.Schedule(stream.Context(), &in)
		if err != nil {
			return err
		}

		if err := stream.SendMsg(out); err != nil {
			return err
		}
	}
}
