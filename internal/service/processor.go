// Package service registers a Benthos "string_literal" processor: given
// a message whose payload is a raw literal token (prefix, quotes and
// body exactly as they appeared in source), it parses the token through
// pkg/fstrlit and emits a JSON description of the resulting AST.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redpanda-data/benthos/v4/public/service"

	"github.com/twinfer/fstrparse/internal/celeval"
	"github.com/twinfer/fstrparse/internal/diagslog"
	"github.com/twinfer/fstrparse/pkg/fstrlit"
)

func init() {
	if err := service.RegisterProcessor(
		"string_literal",
		literalProcessorConfigSpec(),
		func(conf *service.ParsedConfig, mgr *service.Resources) (service.Processor, error) {
			return newLiteralProcessorFromConfig(conf, mgr)
		},
	); err != nil {
		panic(err)
	}
}

// literalProcessorConfig is a plain struct with json/yaml tags built
// from the parsed ConfigSpec fields.
type literalProcessorConfig struct {
	FeatureVersion int  `json:"feature_version" yaml:"feature_version"`
	Evaluate       bool `json:"evaluate" yaml:"evaluate"`
}

func literalProcessorConfigSpec() *service.ConfigSpec {
	return service.NewConfigSpec().
		Summary("Parses a raw string/f-string literal token into its AST, optionally evaluating any embedded expressions.").
		Description("Each message payload is treated as a single lexical string-literal token (prefix letters, quotes, and body exactly as it appeared in source). The processor emits a JSON description of the parsed Constant/JoinedStr/FormattedValue tree.").
		Field(service.NewIntField("feature_version").
			Description("Gates syntax introduced after the language's initial release: f-strings require >= 6, self-documenting `{x=}` requires >= 8.").
			Default(8)).
		Field(service.NewBoolField("evaluate").
			Description("When true, additionally evaluates every embedded expression via CEL, binding message metadata key/value pairs as variables, and includes the evaluated value in the output.").
			Default(false)).
		Version("0.1.0")
}

type literalProcessor struct {
	config literalProcessorConfig
	logger *service.Logger

	mParsedTotal *service.MetricCounter
	mErrorsTotal *service.MetricCounter
	mEvalErrors  *service.MetricCounter
	mProcDur     *service.MetricTimer
}

func newLiteralProcessorFromConfig(conf *service.ParsedConfig, mgr *service.Resources) (*literalProcessor, error) {
	featureVersion, err := conf.FieldInt("feature_version")
	if err != nil {
		return nil, err
	}
	evaluate, err := conf.FieldBool("evaluate")
	if err != nil {
		return nil, err
	}

	logger := mgr.Logger()
	metrics := mgr.Metrics()

	logger.Infof("string_literal processor configured. feature_version=%d evaluate=%t", featureVersion, evaluate)

	return &literalProcessor{
		config: literalProcessorConfig{FeatureVersion: featureVersion, Evaluate: evaluate},
		logger: logger,

		mParsedTotal: metrics.NewCounter("string_literal_parsed_total"),
		mErrorsTotal: metrics.NewCounter("string_literal_errors_total"),
		mEvalErrors:  metrics.NewCounter("string_literal_eval_errors_total"),
		mProcDur:     metrics.NewTimer("string_literal_processing_duration_seconds"),
	}, nil
}

func (p *literalProcessor) Process(ctx context.Context, msg *service.Message) (service.MessageBatch, error) {
	start := time.Now()
	defer func() { p.mProcDur.Timing(time.Since(start).Nanoseconds()) }()

	raw, err := msg.AsBytes()
	if err != nil {
		p.mErrorsTotal.Incr(1)
		msg.SetError(fmt.Errorf("failed to read message payload: %w", err))
		return service.MessageBatch{msg}, nil
	}

	fctx := fstrlit.NewContext("<message>", p.config.FeatureVersion)
	fctx.Diagnostics = diagslog.New(nil)

	token := &fstrlit.Token{Bytes: raw, Lineno: 1, ColOffset: 0, EndLineno: 1, EndColOffset: len(raw)}
	res, err := fstrlit.ParseString(fctx, token)
	if err != nil {
		p.mErrorsTotal.Incr(1)
		msg.SetError(fmt.Errorf("failed to parse string literal: %w", err))
		return service.MessageBatch{msg}, nil
	}
	p.mParsedTotal.Incr(1)

	out := describeNode(res.Node)
	out["bytes_mode"] = res.Flags.BytesMode
	out["raw_mode"] = res.Flags.RawMode
	out["regex_mode"] = res.Flags.RegexMode
	out["char_mode"] = res.Flags.CharMode
	if res.RegexFlags != nil {
		out["regex_flags"] = res.RegexFlags.Text
	}

	if p.config.Evaluate {
		vars := map[string]any{}
		_ = msg.MetaWalkMut(func(key string, value any) error {
			vars[key] = value
			return nil
		})
		if err := attachEvaluatedValues(out, res.Node, vars); err != nil {
			p.mEvalErrors.Incr(1)
			p.logger.Warnf("evaluation failed: %v", err)
		}
	}

	payload, err := json.Marshal(out)
	if err != nil {
		p.mErrorsTotal.Incr(1)
		msg.SetError(fmt.Errorf("failed to marshal AST to JSON: %w", err))
		return service.MessageBatch{msg}, nil
	}
	msg.SetBytes(payload)
	return service.MessageBatch{msg}, nil
}

func (p *literalProcessor) Close(ctx context.Context) error { return nil }

// describeNode renders a pkg/fstrlit AST node as a JSON-friendly map.
func describeNode(n fstrlit.Node) map[string]any {
	switch v := n.(type) {
	case *fstrlit.Constant:
		if v.Value.IsBytes {
			return map[string]any{"kind": "constant", "bytes": v.Value.Bytes}
		}
		return map[string]any{"kind": "constant", "text": v.Value.Text}
	case *fstrlit.JoinedStr:
		parts := make([]map[string]any, 0, len(v.Values))
		for _, piece := range v.Values {
			parts = append(parts, describeNode(piece))
		}
		return map[string]any{"kind": "joined", "values": parts}
	case *fstrlit.FormattedValue:
		m := map[string]any{"kind": "formatted_value", "expr": v.Value.String()}
		if v.Conversion != fstrlit.ConvNone {
			m["conversion"] = string(rune(v.Conversion))
		}
		if v.FormatSpec != nil {
			m["format_spec"] = describeNode(v.FormatSpec)
		}
		return m
	default:
		return map[string]any{"kind": "unknown"}
	}
}

// attachEvaluatedValues walks the AST attaching an "value" key to every
// FormattedValue map already produced by describeNode, evaluating its
// expression via celeval. out must be the map describeNode returned for
// the same node tree.
func attachEvaluatedValues(out map[string]any, n fstrlit.Node, vars map[string]any) error {
	fv, ok := n.(*fstrlit.FormattedValue)
	if !ok {
		if js, ok := n.(*fstrlit.JoinedStr); ok {
			values, _ := out["values"].([]map[string]any)
			for i, piece := range js.Values {
				if i < len(values) {
					if err := attachEvaluatedValues(values[i], piece, vars); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}

	val, err := celeval.Eval(fv.Value, vars)
	if err != nil {
		return err
	}
	out["value"] = val.Value()
	return nil
}
