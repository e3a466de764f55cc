package main

import "github.com/zeromicro/go-zero/core/logx"

// Config is loaded from the yaml file given with -f.
type Config struct {
	ListenOn string `json:",default=:8080"`
	// OriginPatterns authorizes cross origin websocket clients.
	OriginPatterns []string `json:",optional"`
	// IrpcListenOn is the tcp address for irpc clients, none when empty.
	// irpc over websocket is always served on ListenOn at /irpc.
	IrpcListenOn string `json:",optional"`

	MaxThreads   int   `json:",default=64"`
	MaxPasses    int   `json:",default=8"`
	MaxJobs      int   `json:",default=4"`
	MaxGridBytes int64 `json:",default=268435456"`

	Gops     bool   `json:",optional"`
	GopsAddr string `json:",optional"`

	Log logx.LogConf
}
