package server

import (
	"image"

	"github.com/ironsheep/image-analysis-mcp/internal/edge"
	"github.com/ironsheep/image-analysis-mcp/internal/morphology"
)

// session keeps the engines bound to one source path so repeated calls reuse
// the grayscale projection, the binarized source and the edge memo.
type session struct {
	img   image.Image
	edge  *edge.Engine
	morph *morphology.Engine
}

// session returns the engines for path, loading the image on first use.
func (s *Server) session(path string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[path]; ok {
		return sess, nil
	}

	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}

	ee, err := edge.NewEngine(img, edge.WithWorkers(s.cfg.Processing.Workers))
	if err != nil {
		return nil, err
	}
	me, err := morphology.NewEngine(img)
	if err != nil {
		return nil, err
	}

	sess := &session{img: img, edge: ee, morph: me}
	s.sessions[path] = sess
	return sess, nil
}

// forget drops the engines and the cached image for path.
func (s *Server) forget(path string) {
	s.mu.Lock()
	delete(s.sessions, path)
	s.mu.Unlock()
	s.cache.Evict(path)
}
