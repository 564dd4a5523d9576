package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"shopifyproduct.com/pkg/config"
	"shopifyproduct.com/pkg/logger"
	"shopifyproduct.com/pkg/shopify"
)

var (
	input string
	dump  bool
)

func init() {
	flag.StringVar(&input, "input", "product.json", "product JSON file, - for stdin")
	flag.BoolVar(&dump, "dump", false, "-dump")
	flag.Parse()
}

func main() {
	defer logger.Sync()

	conf, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger.Init(conf.AppEnv)
	log := logger.L()

	in, err := readInput(input)
	if err != nil {
		log.Fatal("read product input", zap.String("input", input), zap.Error(err))
	}

	s, err := shopify.NewService(conf.Shopify(), shopify.WithLogger(log))
	if err != nil {
		log.Fatal("configure shopify", zap.Error(err))
	}

	rs, err := s.CreateProduct(context.Background(), in)
	if err != nil {
		if id := rs.ProductID(); id != "" {
			fmt.Fprintf(os.Stderr, "product %s was created but not completed\n", id)
		}
		log.Fatal("create product", zap.Error(err))
	}

	if dump {
		spew.Dump(rs)
		return
	}
	out, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
}

func readInput(path string) (shopify.ProductInput, error) {
	var in shopify.ProductInput
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.OpenFile(path, os.O_RDONLY, 0644)
		if err != nil {
			return in, err
		}
		defer f.Close()
		r = f
	}
	err := json.NewDecoder(r).Decode(&in)
	return in, err
} // ./readInput
