package document

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"archreview/internal/models"
	"archreview/internal/storage"
)

// GenerateDiagram renders a Mermaid architecture diagram for the document,
// stores it as a text artifact, and returns the source plus an editor link.
func (s *Service) GenerateDiagram(ctx context.Context, documentID, diagramType, description string) (*models.DiagramResponse, error) {
	if documentID == "" {
		return nil, badRequest(MsgMissingDocumentID)
	}
	if _, err := s.metadata.Get(ctx, documentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}
	if description == "" {
		description = "AWS Architecture"
	}

	var mermaidCode string
	if diagramType == "bi-analytics" {
		mermaidCode = biAnalyticsMermaid
	} else {
		mermaidCode = fmt.Sprintf(genericMermaid, description)
	}

	key := storage.DiagramKey(documentID, s.now())
	if err := s.objects.Put(ctx, key, []byte(mermaidCode), "text/plain; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("save diagram %s: %w", key, err)
	}

	return &models.DiagramResponse{
		Message:     "Mermaid diagram generated successfully",
		DocumentID:  documentID,
		S3Key:       key,
		MermaidCode: mermaidCode,
		EditURL:     "https://mermaid.live/edit#base64:" + base64.StdEncoding.EncodeToString([]byte(mermaidCode)),
	}, nil
}

const biAnalyticsMermaid = `graph TB
    subgraph auth["Authentication Layer"]
        sso[SSO Provider<br/>SAML 2.0]
        iam[IAM Federation<br/>Role-based Access]
    end

    subgraph cloud["Cloud Environment"]
        vpc[VPC]
        fn[Serverless Functions]
        query[Query Engine]
        bi[BI Service]
    end

    sso --> iam
    iam --> vpc
    vpc --> fn
    fn --> query
    query --> bi
`

const genericMermaid = `graph TB
    subgraph arch["%s"]
        client[Client]
        api[API Layer]
        store[Object Storage]
        table[Metadata Table]
    end

    client --> api
    api --> store
    api --> table
`
