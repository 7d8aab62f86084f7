// Where: internal/dockeradapter/docker.go
// What: Docker SDK helpers for images and job containers.
// Why: Provide scoped queries for packaging and execution state.
package dockeradapter

import (
	"context"
	"fmt"
	"strings"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"

	"github.com/GeoffNN/xmanager/internal/meta"
)

// JobLabel marks containers started for a packaged job.
const JobLabel = meta.LabelPrefix + ".job"

// Client defines the subset of Docker SDK methods used by this package.
// This interface enables mocking the Docker client in tests.
type Client interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
}

// HasImage reports whether an image with the given tag exists locally.
func HasImage(ctx context.Context, client Client, ref string) (bool, error) {
	images, err := client.ImageList(ctx, image.ListOptions{All: true})
	if err != nil {
		return false, err
	}
	repo, tag := SplitTag(ref)
	needle := repo + ":" + tag
	for _, img := range images {
		for _, repoTag := range img.RepoTags {
			if repoTag == needle {
				return true, nil
			}
		}
	}
	return false, nil
}

// Daemon bundles an API client behind method-based queries for callers
// that should not depend on SDK types.
type Daemon struct {
	Client Client
}

// Has reports whether an image with the given tag exists locally.
func (d Daemon) Has(ctx context.Context, ref string) (bool, error) {
	if d.Client == nil {
		return false, fmt.Errorf("docker client is required")
	}
	return HasImage(ctx, d.Client, ref)
}

// List returns the containers started for a job.
func (d Daemon) List(ctx context.Context, job string) ([]ContainerInfo, error) {
	if d.Client == nil {
		return nil, fmt.Errorf("docker client is required")
	}
	return ListJobContainers(ctx, d.Client, job)
}

// Stop stops and removes the containers started for a job.
func (d Daemon) Stop(ctx context.Context, job string) error {
	if d.Client == nil {
		return fmt.Errorf("docker client is required")
	}
	return StopJobContainers(ctx, d.Client, job)
}

// ContainerInfo summarizes a job container.
type ContainerInfo struct {
	ID    string
	Name  string
	Job   string
	State string
}

// ListJobContainers returns containers started for the given job name.
func ListJobContainers(ctx context.Context, client Client, job string) ([]ContainerInfo, error) {
	labelFilter := filters.NewArgs()
	labelFilter.Add("label", fmt.Sprintf("%s=%s", JobLabel, job))

	containers, err := client.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: labelFilter,
	})
	if err != nil {
		return nil, err
	}

	result := make([]ContainerInfo, 0, len(containers))
	for _, ctr := range containers {
		if ctr.Labels == nil || ctr.Labels[JobLabel] != job {
			continue
		}
		name := ""
		if len(ctr.Names) > 0 {
			name = strings.TrimPrefix(ctr.Names[0], "/")
		}
		result = append(result, ContainerInfo{
			ID:    ctr.ID,
			Name:  name,
			Job:   ctr.Labels[JobLabel],
			State: ctr.State,
		})
	}
	return result, nil
}

// StopJobContainers stops and removes every container belonging to a job.
func StopJobContainers(ctx context.Context, client Client, job string) error {
	containers, err := ListJobContainers(ctx, client, job)
	if err != nil {
		return err
	}
	// Containers started with --rm vanish as soon as the stop completes,
	// so a not-found response here means the work is already done.
	for _, ctr := range containers {
		if err := client.ContainerStop(ctx, ctr.ID, container.StopOptions{}); err != nil && !cerrdefs.IsNotFound(err) {
			return fmt.Errorf("stop %s: %w", ctr.ID, err)
		}
		if err := client.ContainerRemove(ctx, ctr.ID, container.RemoveOptions{}); err != nil && !cerrdefs.IsNotFound(err) {
			return fmt.Errorf("remove %s: %w", ctr.ID, err)
		}
	}
	return nil
}

// SplitTag splits an image reference into repository and tag. Without a
// tag, Docker would match every tag instead of latest, so the tag defaults
// to "latest".
func SplitTag(ref string) (string, string) {
	slash := strings.LastIndex(ref, "/")
	colon := strings.LastIndex(ref, ":")
	if colon > slash {
		return ref[:colon], ref[colon+1:]
	}
	return ref, "latest"
}
