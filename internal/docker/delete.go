package docker

import (
	"context"
	"fmt"

	"github.com/VERT-sh/waitress/internal/models"
	"github.com/VERT-sh/waitress/internal/repository"
	"github.com/docker/docker/client"
)

// Deleter removes a server's record, container, and named volume.
type Deleter struct {
	servers *repository.ServerRepository
}

// NewDeleter builds a Deleter.
func NewDeleter(servers *repository.ServerRepository) *Deleter {
	return &Deleter{servers: servers}
}

// Delete deletes record's store entry, then force-removes its container and
// volume. Not-found at the container or volume step is success; a failure
// there is surfaced (the store row is already gone regardless).
func (d *Deleter) Delete(record *models.ServerRecord) error {
	if err := d.servers.Delete(record.ID); err != nil {
		return fmt.Errorf("delete server record: %w", err)
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("connect to container daemon: %w", err)
	}
	defer cli.Close()

	if err := bestEffortRemoveContainer(record.ContainerName()); err != nil {
		return fmt.Errorf("remove container: %w", err)
	}

	if err := cli.VolumeRemove(context.Background(), record.ContainerName(), true); err != nil && !client.IsErrNotFound(err) {
		return fmt.Errorf("remove volume: %w", err)
	}

	return nil
}

func bestEffortRemoveContainer(name string) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return fmt.Errorf("connect to container daemon: %w", err)
	}
	defer cli.Close()

	return RemoveContainerBestEffort(cli, name)
}
