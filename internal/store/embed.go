package store

import (
	"context"
	"fmt"
	"strings"

	"modelpack/pkg/types"
)

// Embed returns the sentence vector of req.Text from req.Model, or from the
// default model when req.Model is empty. Model errors, including rejected
// multi-line input, are returned unmodified.
func (s *Store) Embed(ctx context.Context, req types.EmbedRequest) (types.EmbedResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return types.EmbedResponse{}, fmt.Errorf("%w: text is required", ErrInvalidRequest)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.ensureLocked(ctx, req.Model)
	if err != nil {
		return types.EmbedResponse{}, err
	}
	vec, err := r.model.Embed(req.Text)
	if err != nil {
		return types.EmbedResponse{}, err
	}
	return types.EmbedResponse{Model: r.id, Dim: len(vec), Vector: vec}, nil
}
