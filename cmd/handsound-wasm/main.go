//go:build js && wasm

// Command handsound-wasm runs the frame handlers in the browser. Sound goes
// either to a JS object named handsoundAudio or, after handsoundInit, to the
// built-in engine whose blocks are pulled with handsoundProcessBlock.
package main

import (
	"encoding/json"
	"errors"
	"syscall/js"
	"unsafe"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-handsound/hand"
	"github.com/cwbudde/algo-handsound/internal/mathx"
	"github.com/cwbudde/algo-handsound/session"
	"github.com/cwbudde/algo-handsound/synth"
)

const maxBlock = 128

var (
	logger       *zap.Logger
	engine       *synth.Engine
	playerH      *session.PlayerHandler
	drumH        *session.DrumHandler
	outputBuffer = make([]float32, maxBlock)
)

func main() {
	c := make(chan struct{})

	logger, _ = zap.NewDevelopment(zap.IncreaseLevel(zapcore.WarnLevel))
	if logger == nil {
		logger = zap.NewNop()
	}
	setup(jsFactory{})

	js.Global().Set("handsoundInit", js.FuncOf(handsoundInit))
	js.Global().Set("handsoundFrame", js.FuncOf(handsoundFrame))
	js.Global().Set("handsoundStart", js.FuncOf(handsoundStart))
	js.Global().Set("handsoundStop", js.FuncOf(handsoundStop))
	js.Global().Set("handsoundFail", js.FuncOf(handsoundFail))
	js.Global().Set("handsoundProcessBlock", js.FuncOf(handsoundProcessBlock))
	js.Global().Set("handsoundGetMemoryBuffer", js.FuncOf(handsoundGetMemoryBuffer))

	println("WASM handsound module loaded")
	<-c
}

func setup(tones synth.ToneFactory) {
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithListener(publishStatus),
	}
	playerH = session.NewPlayerHandler(tones, opts...)
	drumH = session.NewDrumHandler(tones, opts...)
}

func publishStatus(st session.Status) {
	fn := js.Global().Get("handsoundStatus")
	if fn.Type() != js.TypeFunction {
		return
	}
	b, err := json.Marshal(st)
	if err != nil {
		logger.Error("encode status", zap.Error(err))
		return
	}
	fn.Invoke(string(b))
}

func handlerFor(args []js.Value) session.Handler {
	if len(args) < 1 {
		return nil
	}
	switch session.Subsystem(args[0].String()) {
	case session.Player:
		return playerH
	case session.Drum:
		return drumH
	}
	logger.Warn("unknown subsystem", zap.String("subsystem", args[0].String()))
	return nil
}

// handsoundInit(sampleRate) switches sound to the in-module engine.
func handsoundInit(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if playerH != nil {
		playerH.Stop()
	}
	engine = synth.NewEngine(args[0].Int())
	setup(engine)
	println("Engine initialized at", args[0].Int(), "Hz")
	return nil
}

// handsoundFrame(subsystem, handsJSON, nowMillis)
func handsoundFrame(this js.Value, args []js.Value) interface{} {
	h := handlerFor(args)
	if h == nil || len(args) < 2 {
		return nil
	}
	var raw []hand.Hand
	if err := json.Unmarshal([]byte(args[1].String()), &raw); err != nil {
		logger.Warn("dropping malformed frame", zap.Error(err))
		return nil
	}
	hands := raw[:0]
	for _, hd := range raw {
		if err := hand.Validate(hd); err != nil {
			logger.Warn("dropping hand", zap.Error(err))
			continue
		}
		hands = append(hands, hd)
	}
	if h == drumH && len(args) > 2 && args[2].Type() == js.TypeNumber {
		drumH.OnFrameAt(hands, int64(args[2].Float()))
		return nil
	}
	h.OnFrame(hands)
	return nil
}

func handsoundStart(this js.Value, args []js.Value) interface{} {
	if h := handlerFor(args); h != nil {
		h.Start()
	}
	return nil
}

func handsoundStop(this js.Value, args []js.Value) interface{} {
	if h := handlerFor(args); h != nil {
		h.Stop()
	}
	return nil
}

// handsoundFail(subsystem, message)
func handsoundFail(this js.Value, args []js.Value) interface{} {
	h := handlerFor(args)
	if h == nil {
		return nil
	}
	msg := "unknown error"
	if len(args) > 1 {
		msg = args[1].String()
	}
	h.Fail(errors.New(msg))
	return nil
}

func handsoundProcessBlock(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || engine == nil {
		return 0
	}
	numFrames := mathx.Clamp(args[0].Int(), 0, maxBlock)
	copy(outputBuffer, engine.Process(numFrames))
	ptr := &outputBuffer[0]
	return js.ValueOf(uintptr(unsafe.Pointer(ptr)))
}

func handsoundGetMemoryBuffer(this js.Value, args []js.Value) interface{} {
	return js.Global().Get("Go").Get("_inst").Get("exports").Get("mem").Get("buffer")
}
