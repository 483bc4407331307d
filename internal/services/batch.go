package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"time"

	"photo-wall/internal/logger"

	"gocv.io/x/gocv"
)

var (
	ErrNoInputs  = errors.New("no input images")
	ErrOddInputs = errors.New("merge needs an even number of images")
	ErrBadScale  = errors.New("scale must be positive")
)

// BatchResult lists the files a batch run produced, in order
type BatchResult struct {
	Written  []string
	Duration time.Duration
}

// BatchService runs one-shot OpenCV transforms over sets of image files.
// It shares no state with the wall.
type BatchService struct {
	logger        logger.Logger
	interpolation gocv.InterpolationFlags
}

func NewBatchService(log logger.Logger) *BatchService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &BatchService{
		logger:        log,
		interpolation: gocv.InterpolationLinear,
	}
}

// ResizeDirectory scales every image matching pattern by scale and writes the
// result into outDir under the same base name.
func (bs *BatchService) ResizeDirectory(ctx context.Context, pattern, outDir string, scale float64) (BatchResult, error) {
	var result BatchResult
	start := time.Now()

	if scale <= 0 {
		return result, fmt.Errorf("%w: %v", ErrBadScale, scale)
	}

	inputs, err := filepath.Glob(pattern)
	if err != nil {
		return result, fmt.Errorf("failed to expand %q: %w", pattern, err)
	}
	if len(inputs) == 0 {
		return result, fmt.Errorf("%w: %q matched nothing", ErrNoInputs, pattern)
	}
	sort.Strings(inputs)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, input := range inputs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		output := ResizedPath(outDir, input)
		if err := bs.resizeFile(input, output, scale); err != nil {
			return result, err
		}
		result.Written = append(result.Written, output)
	}

	result.Duration = time.Since(start)
	bs.logger.Info("BatchService", "resize completed", map[string]interface{}{
		"files":       len(result.Written),
		"scale":       scale,
		"output_dir":  outDir,
		"duration_ms": result.Duration.Milliseconds(),
	})
	return result, nil
}

func (bs *BatchService) resizeFile(input, output string, scale float64) error {
	src, err := readMat(input)
	if err != nil {
		return err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.Resize(src, &dst, image.Point{}, scale, scale, bs.interpolation)
	if dst.Empty() {
		return fmt.Errorf("failed to resize %s", input)
	}

	return writeMat(output, dst)
}

// MergePairs stacks input i on top of input i+n/2, resizing the lower image to
// the upper one's size, and writes merged<i>.jpg into outDir.
func (bs *BatchService) MergePairs(ctx context.Context, inputs []string, outDir string) (BatchResult, error) {
	var result BatchResult
	start := time.Now()

	pairs, err := PairInputs(inputs)
	if err != nil {
		return result, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}

	for i, pair := range pairs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		output := MergedPath(outDir, i)
		if err := bs.mergeFiles(pair[0], pair[1], output); err != nil {
			return result, err
		}
		result.Written = append(result.Written, output)
	}

	result.Duration = time.Since(start)
	bs.logger.Info("BatchService", "merge completed", map[string]interface{}{
		"pairs":       len(result.Written),
		"output_dir":  outDir,
		"duration_ms": result.Duration.Milliseconds(),
	})
	return result, nil
}

func (bs *BatchService) mergeFiles(top, bottom, output string) error {
	upper, err := readMat(top)
	if err != nil {
		return err
	}
	defer upper.Close()

	lower, err := readMat(bottom)
	if err != nil {
		return err
	}
	defer lower.Close()

	fitted := gocv.NewMat()
	defer fitted.Close()
	gocv.Resize(lower, &fitted, image.Point{X: upper.Cols(), Y: upper.Rows()}, 0, 0, bs.interpolation)
	if fitted.Empty() {
		return fmt.Errorf("failed to resize %s", bottom)
	}

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Vconcat(upper, fitted, &merged)
	if merged.Empty() {
		return fmt.Errorf("failed to merge %s and %s", top, bottom)
	}

	return writeMat(output, merged)
}

// PairInputs pairs the first half of inputs with the second half, index by index
func PairInputs(inputs []string) ([][2]string, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	if len(inputs)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddInputs, len(inputs))
	}

	half := len(inputs) / 2
	pairs := make([][2]string, half)
	for i := range pairs {
		pairs[i] = [2]string{inputs[i], inputs[i+half]}
	}
	return pairs, nil
}

func ResizedPath(outDir, input string) string {
	return filepath.Join(outDir, filepath.Base(input))
}

func MergedPath(outDir string, index int) string {
	return filepath.Join(outDir, fmt.Sprintf("merged%d.jpg", index))
}

func readMat(path string) (gocv.Mat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.Mat{}, fmt.Errorf("failed to decode %s: empty image", path)
	}
	return mat, nil
}

func writeMat(path string, mat gocv.Mat) error {
	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to write %s", path)
	}
	return nil
}
