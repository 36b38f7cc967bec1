// Command minify builds dist/ for production: templates/*.html and the
// static CSS and JS are minified, everything else under static/ is copied.
//
//	go run ./cmd/minify                      # whole tree into dist/
//	go run ./cmd/minify -input=f -output=o -type=css
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// mediaTypes maps file extensions to the minifier that handles them.
var mediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
}

func main() {
	var (
		srcDir     = flag.String("src", ".", "Directory holding templates/ and static/")
		outDir     = flag.String("out", "dist", "Output directory")
		inputFile  = flag.String("input", "", "Minify a single file instead of the tree")
		outputFile = flag.String("output", "", "Output path for -input")
		fileType   = flag.String("type", "", "File type for -input (css, js or html)")
	)
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	m := newMinifier()

	if *inputFile != "" {
		if *outputFile == "" || *fileType == "" {
			log.Fatal().Msg("usage: minify -input=<file> -output=<file> -type=<css|js|html>")
		}
		mediaType, ok := mediaTypes["."+strings.ToLower(*fileType)]
		if !ok {
			log.Fatal().Msgf("unsupported file type: %s (supported: css, js, html)", *fileType)
		}
		st, err := minifyFile(m, *inputFile, *outputFile, mediaType)
		if err != nil {
			log.Fatal().Err(err).Str("input", *inputFile).Msg("minify failed")
		}
		report(st)
		return
	}

	var total stats
	for _, dir := range []string{"templates", "static"} {
		st, err := minifyTree(m, filepath.Join(*srcDir, dir), filepath.Join(*outDir, dir))
		if err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("minify failed")
		}
		total.add(st)
	}
	report(total)
	fmt.Printf("Minified files are in %s\n", *outDir)
}

// newMinifier returns a minifier that leaves Go template actions intact.
func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	m.Add("text/html", &html.Minifier{
		TemplateDelims:   html.GoTemplateDelims,
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return m
}

type stats struct {
	Files    int
	Original int
	Minified int
}

func (s *stats) add(o stats) {
	s.Files += o.Files
	s.Original += o.Original
	s.Minified += o.Minified
}

func report(s stats) {
	if s.Original == 0 {
		log.Info().Int("files", s.Files).Msg("nothing to minify")
		return
	}
	ratio := float64(s.Original-s.Minified) / float64(s.Original) * 100
	log.Info().Int("files", s.Files).Int("before", s.Original).Int("after", s.Minified).
		Msgf("%.1f%% reduction", ratio)
}

// minifyTree walks src and writes every file to the same relative path
// under dst. Known types are minified, the rest copied as is. A missing
// src is not an error.
func minifyTree(m *minify.M, src, dst string) (stats, error) {
	var total stats
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return total, nil
	}
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return copyFile(path, target)
		}
		st, err := minifyFile(m, path, target, mediaType)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		total.add(st)
		return nil
	})
	return total, err
}

func minifyFile(m *minify.M, srcPath, dstPath, mediaType string) (stats, error) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return stats{}, err
	}
	minified, err := m.Bytes(mediaType, src)
	if err != nil {
		return stats{}, err
	}
	if err := writeFile(dstPath, minified); err != nil {
		return stats{}, err
	}
	log.Debug().Str("file", srcPath).Int("before", len(src)).Int("after", len(minified)).Msg("minified")
	return stats{Files: 1, Original: len(src), Minified: len(minified)}, nil
}

func copyFile(srcPath, dstPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	return writeFile(dstPath, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
