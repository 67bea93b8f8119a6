package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/rs/zerolog/log"
)

type Service struct {
	Binary string
}

// RunInput describes a local container run of a function image.
// Images built on the Lambda base images answer the runtime interface emulator on 8080.
type RunInput struct {
	Image       string
	Port        string
	Environment map[string]string
}

func FromPath(ctx context.Context) (Service, error) {
	binary, err := exec.LookPath("docker")
	if err != nil {
		return Service{}, fmt.Errorf("failed to find docker binary: %v", err)
	}

	return Service{Binary: binary}, nil
}

func (s Service) Login(ctx context.Context, registryUrl, username, password string) error {
	cmd := exec.CommandContext(ctx, s.Binary, "login", "--username", username, "--password-stdin", registryUrl)
	cmd.Env = os.Environ()
	cmd.Stdin = strings.NewReader(password)
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func (s Service) InspectByTag(ctx context.Context, image string) (types.ImageInspect, error) {
	cmd := exec.CommandContext(ctx, s.Binary, "image", "inspect", image)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr

	output, err := cmd.Output()
	if err != nil {
		return types.ImageInspect{}, err
	}

	return decodeInspect(output, image)
}

func (s Service) Build(ctx context.Context, path string, labels map[string]string, tags []string) error {
	cmd := exec.CommandContext(ctx, s.Binary, BuildArgs(path, labels, tags)...)
	cmd.Env = append(os.Environ(), "DOCKER_BUILDKIT=1")
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stderr

	log.Debug().Strs("tags", tags).Str("path", path).Msg("building image")

	return cmd.Run()
}

func (s Service) Push(ctx context.Context, tag string) error {
	cmd := exec.CommandContext(ctx, s.Binary, "push", tag)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func (s Service) Run(ctx context.Context, i RunInput) error {
	cmd := exec.CommandContext(ctx, s.Binary, RunArgs(i)...)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// BuildArgs renders docker build arguments with labels in key order.
func BuildArgs(path string, labels map[string]string, tags []string) []string {
	args := []string{
		"build",
		"-f", filepath.Join(path, "Dockerfile"),
	}

	for _, tag := range tags {
		args = append(args, "-t", tag)
	}

	for _, key := range sortedKeys(labels) {
		args = append(args, "--label", fmt.Sprintf("%s=%s", key, labels[key]))
	}

	return append(args, path)
}

func RunArgs(i RunInput) []string {
	args := []string{
		"run",
		"--rm",
		"-p", i.Port + ":8080",
	}

	for _, key := range sortedKeys(i.Environment) {
		args = append(args, "--env", key+"="+i.Environment[key])
	}

	return append(args, i.Image)
}

func decodeInspect(output []byte, image string) (types.ImageInspect, error) {
	var inspectData []types.ImageInspect
	if err := json.Unmarshal(output, &inspectData); err != nil {
		return types.ImageInspect{}, err
	}

	switch len(inspectData) {
	case 0:
		return types.ImageInspect{}, fmt.Errorf("no image found for %s", image)
	case 1:
		return inspectData[0], nil
	default:
		return types.ImageInspect{}, fmt.Errorf("multiple images found for %s", image)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
