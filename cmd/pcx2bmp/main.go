package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jessevdk/go-flags"

	img "github.com/edwardgushchin/SDL-image"
)

const version = "pcx2bmp 1.0.0"

const detailedHelp = `pcx2bmp — конвертер PCX в 8-битный BMP.

Использование:
  pcx2bmp [опции] <файл.pcx>

Опции:
  -o, --output   Имя выходного BMP-файла (по умолчанию <файл>.bmp)
  -v, --version  Показать версию и выйти
  -h, --help     Показать эту справку

Декодер поддерживает PCX с 1..4 битами на пиксель в многоплоскостном
виде, 8-битные индексированные и 24-битные трёхплоскостные изображения.
24-битные изображения перед записью BMP квантуются до 256 цветов
методом median cut.
`

type Options struct {
	Output  string `short:"o" long:"output" description:"Имя выходного BMP-файла"`
	Version bool   `short:"v" long:"version" description:"Показать версию и выйти"`
	Help    bool   `short:"h" long:"help" description:"Показать справку"`
}

func main() {
	var opts Options

	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	args, err := parser.Parse()
	if opts.Help {
		fmt.Print(detailedHelp)
		return
	}
	if opts.Version {
		fmt.Println(version)
		return
	}
	if err != nil || len(args) == 0 {
		fmt.Print(detailedHelp)
		os.Exit(1)
	}

	inputFile := args[0]
	outputFile := opts.Output

	// Если `--output` не указан, используем `<input>.bmp`
	if outputFile == "" {
		outputFile = strings.TrimSuffix(inputFile, filepath.Ext(inputFile)) + ".bmp"
	}

	surfaceCh := make(chan *img.Surface)
	quantCh := make(chan *img.Surface)
	errCh := make(chan error)
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		surface, err := loadPCX(inputFile)
		if err != nil {
			errCh <- err
			return
		}
		surfaceCh <- surface
		close(surfaceCh)
	}()

	go func() {
		defer wg.Done()
		var q Quantizer = &MedianCutQuantizer{}
		for surface := range surfaceCh {
			quantized, err := q.Quantize(surface)
			if err != nil {
				errCh <- err
				return
			}
			quantCh <- quantized
		}
		close(quantCh)
	}()

	go func() {
		defer wg.Done()
		for surface := range quantCh {
			if err := SaveBMP(outputFile, surface); err != nil {
				errCh <- err
				return
			}
			done <- struct{}{}
		}
	}()

	select {
	case err := <-errCh:
		log.Fatalf("Ошибка в конвейере: %v", err)
	case <-done:
		log.Println("Файл успешно записан:", filepath.Join(".", outputFile))
	}

	wg.Wait()
}

func loadPCX(filename string) (*img.Surface, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !img.IsPCX(f) {
		return nil, fmt.Errorf("%s: не PCX-файл", filename)
	}
	return img.LoadPCX(f)
}
