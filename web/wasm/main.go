//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/modem"
	"github.com/cwbudde/algo-modem/internal/webmodem"
)

var (
	engine  *webmodem.Engine
	funcs   []js.Func
	scratch []float32
)

func main() {
	api := js.Global().Get("Object").New()

	// init(sampleRate, blockSize?, config?)
	api.Set("init", export(func(args []js.Value) any {
		sr := 48000.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		block := core.RenderQuantum
		if len(args) > 1 && args[1].Truthy() {
			block = args[1].Int()
		}
		cfg := modem.DefaultConfig()
		if len(args) > 2 && args[2].Type() == js.TypeObject {
			cfg = configFromJS(args[2], cfg)
		}
		e, err := webmodem.NewEngine(sr, block, cfg, nil)
		if err != nil {
			return err.Error()
		}
		engine = e
		scratch = make([]float32, block)
		return js.Null()
	}))

	api.Set("transmit", export(func(_ []js.Value) any {
		if engine == nil {
			return js.Global().Get("Float32Array").New(0)
		}
		if err := engine.Render(scratch); err != nil {
			return err.Error()
		}
		arr := js.Global().Get("Float32Array").New(len(scratch))
		for i, v := range scratch {
			arr.SetIndex(i, v)
		}
		return arr
	}))

	api.Set("receive", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		in := args[0]
		if in.Length() != len(scratch) {
			return "receive: block size mismatch"
		}
		for i := range scratch {
			scratch[i] = float32(in.Index(i).Float())
		}
		if err := engine.Receive(scratch); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("points", export(func(_ []js.Value) any {
		if engine == nil {
			return js.Global().Get("Float32Array").New(0)
		}
		flat := engine.Points()
		arr := js.Global().Get("Float32Array").New(len(flat))
		for i, v := range flat {
			arr.SetIndex(i, v)
		}
		return arr
	}))

	api.Set("setDelay", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		engine.SetDelay(args[0].Float())
		return js.Null()
	}))

	api.Set("setPhaseOffset", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		engine.SetPhaseOffset(args[0].Float())
		return js.Null()
	}))

	api.Set("inputLevel", export(func(_ []js.Value) any {
		if engine == nil {
			return 0
		}
		return engine.InputLevel()
	}))

	js.Global().Set("AlgoModem", api)
	select {}
}

func configFromJS(v js.Value, cfg modem.Config) modem.Config {
	if f := v.Get("carrierFrequency"); f.Type() == js.TypeNumber {
		cfg.CarrierFrequency = f.Float()
	}
	if f := v.Get("symbolLength"); f.Type() == js.TypeNumber {
		cfg.SymbolLength = f.Float()
	}
	if f := v.Get("constellationSize"); f.Type() == js.TypeNumber {
		cfg.ConstellationSize = f.Int()
	}
	if f := v.Get("rollOff"); f.Type() == js.TypeNumber {
		cfg.RollOff = f.Float()
	}
	if f := v.Get("rrcLength"); f.Type() == js.TypeNumber {
		cfg.RRCLength = f.Int()
	}
	return cfg
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
