package main

import (
	"fmt"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	"go.uber.org/zap"
)

// Tokenizer estimates how many tokens the assembled document costs.
type Tokenizer interface {
	CountTokens(text string) int
}

type tiktokenCounter struct {
	ttk *tiktoken.Tiktoken
}

func (t *tiktokenCounter) CountTokens(text string) int {
	return len(t.ttk.EncodeOrdinary(text))
}

type hfCounter struct {
	htk    *hf.Tokenizer
	logger *zap.Logger
}

func (t *hfCounter) CountTokens(text string) int {
	en, err := t.htk.EncodeSingle(text)
	if err != nil {
		t.logger.Warn("HuggingFace tokenizer failed to encode text", zap.Error(err))
		return 0
	}
	return len(en.Tokens)
}

const (
	defaultTiktokenModel = "gpt-4o"
	defaultHFModel       = "gpt2"
)

// newTokenizer returns the configured tokenizer, or nil when counting is
// disabled.
func newTokenizer(kind, model, file string, logger *zap.Logger) (Tokenizer, error) {
	switch strings.ToLower(kind) {
	case "", "none":
		return nil, nil
	case "tiktoken":
		return loadTiktoken(model, logger)
	case "huggingface":
		return loadHuggingFace(model, file, logger)
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use 'tiktoken', 'huggingface' or 'none'", kind)
	}
}

func loadTiktoken(model string, logger *zap.Logger) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Warn("Tiktoken model not found, using default",
			zap.String("model", model), zap.String("default", defaultTiktokenModel), zap.Error(err))
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &tiktokenCounter{ttk: tke}, nil
}

func loadHuggingFace(model, file string, logger *zap.Logger) (Tokenizer, error) {
	if file == "" {
		if model == "" {
			model = defaultHFModel
		}
		logger.Info("Loading HuggingFace tokenizer", zap.String("model", model))
		p, err := hf.CachedPath(model, "tokenizer.json")
		if err != nil {
			return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
		}
		file = p
	}
	tk, err := pretrained.FromFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer from %s: %w", file, err)
	}
	return &hfCounter{htk: tk, logger: logger}, nil
}
