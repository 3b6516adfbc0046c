package docker

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/VERT-sh/waitress/internal/models"
	"github.com/VERT-sh/waitress/pkg/logger"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
)

//go:embed assets/provision.sh
var provisionScript string

const minecraftPort = "25565/tcp"

// Provisioner creates and starts the containers backing a ServerRecord, and
// restores them from persisted metadata at boot.
type Provisioner struct {
	baseDir string
}

// NewProvisioner returns a Provisioner rooted at baseDir (the "volumes"
// directory's parent).
func NewProvisioner(baseDir string) *Provisioner {
	return &Provisioner{baseDir: baseDir}
}

func (p *Provisioner) volumesDir() string {
	return filepath.Join(p.baseDir, "volumes")
}

func (p *Provisioner) recordDir(record *models.ServerRecord) string {
	return filepath.Join(p.volumesDir(), record.ContainerName())
}

// Provision runs the full create-mode algorithm: pull image, lay out the
// host volume, create the named volume, write the bootstrap script, create
// the container, and start it.
func (p *Provisioner) Provision(record *models.ServerRecord, jarURL string) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("connect to container daemon: %w", err)
	}
	defer cli.Close()

	ctx := context.Background()

	if err := p.pullImage(ctx, cli, record.Image, record.ID); err != nil {
		return err
	}

	if err := os.MkdirAll(p.volumesDir(), 0755); err != nil {
		return fmt.Errorf("create volumes directory: %w", err)
	}

	dir := p.recordDir(record)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create server volume directory: %w", err)
	}

	if _, err := cli.VolumeCreate(ctx, volume.CreateOptions{
		Name:   record.ContainerName(),
		Driver: "local",
	}); err != nil {
		return fmt.Errorf("create named volume: %w", err)
	}

	if err := p.writeScript(dir, jarURL); err != nil {
		return err
	}

	absPath, err := p.resolveAbsPath(dir)
	if err != nil {
		return err
	}

	return p.createAndStart(ctx, cli, record, absPath)
}

// Restore runs the restore-mode algorithm: recreate a container from the
// record's already-persisted image tag, reusing the existing volume and
// never rewriting provision.sh.
func (p *Provisioner) Restore(record *models.ServerRecord) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("connect to container daemon: %w", err)
	}
	defer cli.Close()

	ctx := context.Background()

	if err := os.MkdirAll(p.volumesDir(), 0755); err != nil {
		return fmt.Errorf("create volumes directory: %w", err)
	}

	dir := p.recordDir(record)
	absPath, err := p.resolveAbsPath(dir)
	if err != nil {
		return err
	}

	return p.createAndStart(ctx, cli, record, absPath)
}

// VolumeDirExists reports whether a record's host volume directory exists,
// used by the Restorer to decide between tombstoning and recreating.
func (p *Provisioner) VolumeDirExists(record *models.ServerRecord) bool {
	_, err := os.Stat(p.recordDir(record))
	return err == nil
}

func (p *Provisioner) pullImage(ctx context.Context, cli *client.Client, imageName, recordID string) error {
	reader, err := cli.ImagePull(ctx, imageName, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("pull image %s: %w", imageName, err)
	}
	defer reader.Close()

	lines := make(chan string, 16)
	go func() {
		defer close(lines)
		buf := make([]byte, 4096)
		for {
			n, err := reader.Read(buf)
			if n > 0 {
				lines <- string(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	for line := range lines {
		logger.Info("image pull status", map[string]interface{}{"record_id": recordID, "status": strings.TrimSpace(line)})
	}
	return nil
}

func (p *Provisioner) writeScript(dir, jarURL string) error {
	script := "JAR_URL=" + jarURL + "\n" + normalizeNewlines(provisionScript)
	path := filepath.Join(dir, "provision.sh")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		return fmt.Errorf("write bootstrap script: %w", err)
	}
	return nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// resolveAbsPath resolves dir to an absolute path and strips a Windows
// extended-length prefix, which the container daemon rejects in bind specs.
func (p *Provisioner) resolveAbsPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return stripExtendedLengthPrefix(abs), nil
}

const windowsExtendedLengthPrefix = `\\?\`

func stripExtendedLengthPrefix(path string) string {
	return strings.TrimPrefix(path, windowsExtendedLengthPrefix)
}

func (p *Provisioner) createAndStart(ctx context.Context, cli *client.Client, record *models.ServerRecord, absPath string) error {
	portBinding := nat.PortBinding{
		HostIP:   "127.0.0.1",
		HostPort: strconv.Itoa(record.Port),
	}

	_, err := cli.ContainerCreate(
		ctx,
		&container.Config{
			Image: record.Image,
			Cmd:   []string{"sh", "-c", "cd /data && sh provision.sh"},
			ExposedPorts: nat.PortSet{
				minecraftPort: struct{}{},
			},
			Volumes: map[string]struct{}{
				"/data": {},
			},
			OpenStdin: true,
		},
		&container.HostConfig{
			PortBindings: nat.PortMap{
				minecraftPort: []nat.PortBinding{portBinding},
			},
			Binds: []string{absPath + "/:/data"},
		},
		nil,
		nil,
		record.ContainerName(),
	)
	if err != nil {
		return fmt.Errorf("create container: %w", err)
	}

	if err := cli.ContainerStart(ctx, record.ContainerName(), container.StartOptions{}); err != nil {
		return fmt.Errorf("start container: %w", err)
	}

	return nil
}

// ContainerExists reports whether a container named record.ContainerName()
// can be inspected.
func (p *Provisioner) ContainerExists(record *models.ServerRecord) bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()

	_, err = cli.ContainerInspect(context.Background(), record.ContainerName())
	return err == nil
}

// StartContainer starts an already-created container (idempotent: starting
// an already-running container is success).
func (p *Provisioner) StartContainer(record *models.ServerRecord) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("connect to container daemon: %w", err)
	}
	defer cli.Close()

	if err := cli.ContainerStart(context.Background(), record.ContainerName(), container.StartOptions{}); err != nil {
		return fmt.Errorf("start container: %w", err)
	}
	return nil
}

// RemoveContainerBestEffort force-removes a container by name, tolerating
// not-found.
func RemoveContainerBestEffort(cli *client.Client, name string) error {
	err := cli.ContainerRemove(context.Background(), name, container.RemoveOptions{Force: true})
	if err != nil && !client.IsErrNotFound(err) {
		return err
	}
	return nil
}
