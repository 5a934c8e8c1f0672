package sandbox

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"careerprep/interview/internal/models"
)

// DockerLimits bounds one containerized execution.
type DockerLimits struct {
	MemoryB  int64
	NanoCPUs int64
}

// DefaultDockerLimits returns the stock limits: 256 MiB, half a CPU.
func DefaultDockerLimits() DockerLimits {
	return DockerLimits{
		MemoryB:  256 * 1024 * 1024,
		NanoCPUs: 500_000_000,
	}
}

// DockerExecutor runs code in a throwaway container with no network, a
// read-only rootfs and resource limits. The hardened backend for
// deployments where an interpreter child process is not isolation enough.
type DockerExecutor struct {
	cli    *client.Client
	limits DockerLimits
}

func NewDockerExecutor(limits DockerLimits) (*DockerExecutor, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	return &DockerExecutor{cli: cli, limits: limits}, nil
}

func (e *DockerExecutor) SupportedLanguages() []string {
	return supportedLanguageList()
}

func (e *DockerExecutor) Execute(ctx context.Context, code, language, stdin string) models.CodeExecutionResult {
	spec, ok := languageSpecs[language]
	if !ok {
		return unsupportedLanguageResult(language)
	}

	if len(code) > MaxCodeLength {
		return codeTooLongResult()
	}

	if msg := screenCode(code, language, stdin != ""); msg != "" {
		return models.CodeExecutionResult{Success: false, Stderr: msg}
	}

	runCtx, cancel := context.WithTimeout(ctx, spec.Timeout)
	defer cancel()

	fileName := "main" + spec.Extension
	start := time.Now()

	stdout, stderr, exitCode, err := e.runInContainer(runCtx, spec, fileName, code, stdin)
	elapsed := time.Since(start).Milliseconds()

	if runCtx.Err() == context.DeadlineExceeded {
		return models.CodeExecutionResult{
			Success:         false,
			Stderr:          fmt.Sprintf("Execution timed out after %d seconds", int(spec.Timeout.Seconds())),
			ExecutionTimeMs: spec.Timeout.Milliseconds(),
		}
	}
	if err != nil {
		return models.CodeExecutionResult{
			Success:         false,
			Stderr:          fmt.Sprintf("Execution error: %v", err),
			ExecutionTimeMs: elapsed,
		}
	}

	return models.CodeExecutionResult{
		Success:         exitCode == 0,
		Stdout:          truncate(stdout, MaxOutputLength),
		Stderr:          truncate(stderr, MaxOutputLength),
		ExecutionTimeMs: elapsed,
	}
}

func (e *DockerExecutor) RunWithTests(ctx context.Context, code, language string, testCases []models.TestCase) models.CodeExecutionResult {
	return runWithTests(ctx, e, code, language, testCases)
}

func (e *DockerExecutor) runInContainer(ctx context.Context, spec LanguageSpec, fileName, code, stdin string) (stdout, stderr string, exitCode int, err error) {
	hostCfg := &container.HostConfig{
		NetworkMode:    "none",
		ReadonlyRootfs: true,
		Mounts: []mount.Mount{
			{Type: mount.TypeTmpfs, Target: "/tmp"},
			{Type: mount.TypeTmpfs, Target: "/workspace"},
		},
		Resources: container.Resources{
			Memory:   e.limits.MemoryB,
			NanoCPUs: e.limits.NanoCPUs,
		},
		SecurityOpt: []string{"no-new-privileges"},
	}

	conf := &container.Config{
		Image:        spec.Image,
		Cmd:          []string{"sleep", "infinity"},
		Tty:          false,
		WorkingDir:   "/workspace",
		AttachStdout: false,
		AttachStderr: false,
	}

	create, err := e.cli.ContainerCreate(ctx, conf, hostCfg, nil, nil, "")
	if err != nil {
		return "", "", 0, err
	}
	cid := create.ID
	defer func() {
		_ = e.cli.ContainerRemove(context.Background(), cid, types.ContainerRemoveOptions{Force: true})
	}()

	if err := e.cli.ContainerStart(ctx, cid, types.ContainerStartOptions{}); err != nil {
		return "", "", 0, err
	}

	if err := e.copyFile(ctx, cid, "/workspace/"+fileName, []byte(code)); err != nil {
		return "", "", 0, err
	}

	cmd := append(append([]string(nil), spec.Command...), fileName)
	execResp, err := e.cli.ContainerExecCreate(ctx, cid, types.ExecConfig{
		Cmd:          cmd,
		WorkingDir:   "/workspace",
		AttachStdin:  stdin != "",
		AttachStdout: true,
		AttachStderr: true,
		Tty:          false,
	})
	if err != nil {
		return "", "", 0, err
	}

	attach, err := e.cli.ContainerExecAttach(ctx, execResp.ID, types.ExecStartCheck{Tty: false})
	if err != nil {
		return "", "", 0, err
	}
	defer attach.Close()

	if stdin != "" {
		if _, err := attach.Conn.Write([]byte(stdin)); err != nil {
			return "", "", 0, err
		}
		_ = attach.CloseWrite()
	}

	var outBuf, errBuf strings.Builder
	_, _ = stdcopy.StdCopy(writerFunc(func(p []byte) { outBuf.Write(p) }),
		writerFunc(func(p []byte) { errBuf.Write(p) }),
		attach.Reader)

	inspect, err := e.cli.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		return outBuf.String(), errBuf.String(), 0, err
	}

	return outBuf.String(), errBuf.String(), inspect.ExitCode, nil
}

func (e *DockerExecutor) copyFile(ctx context.Context, cid, absPath string, content []byte) error {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	if err := tw.WriteHeader(&tar.Header{
		Name: absPath[1:],
		Mode: 0600,
		Size: int64(len(content)),
	}); err != nil {
		return err
	}
	if _, err := tw.Write(content); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return e.cli.CopyToContainer(ctx, cid, "/", &buf, types.CopyToContainerOptions{})
}

type writerFunc func([]byte)

func (f writerFunc) Write(p []byte) (int, error) {
	f(p)
	return len(p), nil
}
