package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrTypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	dockerTypes "github.com/docker/docker/api/types"
)

type DistributionManifest struct {
	SchemaVersion int    `json:"schemaVersion"`
	MediaType     string `json:"mediaType"`
	Config        struct {
		MediaType string `json:"mediaType"`
		Size      int    `json:"size"`
		Digest    string `json:"digest"`
	} `json:"config"`
}

// InspectByTag reads the image config blob of a pushed tag, which carries labels and architecture.
func (s Service) InspectByTag(ctx context.Context, registryId, repository, tag string) (dockerTypes.ImageInspect, error) {
	image, err := s.imageByTag(ctx, registryId, repository, tag)
	if err != nil {
		return dockerTypes.ImageInspect{}, err
	}

	var manifest DistributionManifest
	if err := json.Unmarshal([]byte(aws.ToString(image.ImageManifest)), &manifest); err != nil {
		return dockerTypes.ImageInspect{}, fmt.Errorf("failed to decode manifest for tag %s: %v", tag, err)
	}

	downloadUrl, err := s.Client.Ecr.GetDownloadUrlForLayer(ctx, &ecr.GetDownloadUrlForLayerInput{
		RegistryId:     aws.String(registryId),
		RepositoryName: aws.String(repository),
		LayerDigest:    aws.String(manifest.Config.Digest),
	})
	if err != nil {
		return dockerTypes.ImageInspect{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, aws.ToString(downloadUrl.DownloadUrl), nil)
	if err != nil {
		return dockerTypes.ImageInspect{}, err
	}

	resp, err := s.Client.Http.Do(req)
	if err != nil {
		return dockerTypes.ImageInspect{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return dockerTypes.ImageInspect{}, fmt.Errorf("failed to download image config for tag %s: %s", tag, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return dockerTypes.ImageInspect{}, err
	}

	var inspect dockerTypes.ImageInspect
	if err := json.Unmarshal(body, &inspect); err != nil {
		return dockerTypes.ImageInspect{}, err
	}

	inspect.ID = manifest.Config.Digest
	inspect.RepoDigests = []string{repository + "@" + aws.ToString(image.ImageId.ImageDigest)}

	return inspect, nil
}

// ImageUri pins a tag to its digest so deployments never float.
func (s Service) ImageUri(ctx context.Context, registryId, registryUrl, repository, tag string) (string, error) {
	image, err := s.imageByTag(ctx, registryId, repository, tag)
	if err != nil {
		return "", err
	}

	return registryUrl + "/" + repository + "@" + aws.ToString(image.ImageId.ImageDigest), nil
}

func (s Service) imageByTag(ctx context.Context, registryId, repository, tag string) (ecrTypes.Image, error) {
	output, err := s.Client.Ecr.BatchGetImage(ctx, &ecr.BatchGetImageInput{
		RegistryId:     aws.String(registryId),
		RepositoryName: aws.String(repository),
		ImageIds: []ecrTypes.ImageIdentifier{
			{
				ImageTag: aws.String(tag),
			},
		},
	})
	if err != nil {
		return ecrTypes.Image{}, err
	}

	switch len(output.Images) {
	case 0:
		return ecrTypes.Image{}, fmt.Errorf("no such release found for tag %s", tag)
	case 1:
		if output.Images[0].ImageId == nil {
			return ecrTypes.Image{}, fmt.Errorf("release for tag %s has no image id", tag)
		}
		return output.Images[0], nil
	default:
		return ecrTypes.Image{}, fmt.Errorf("multiple releases found for tag %s", tag)
	}
}
