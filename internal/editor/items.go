package editor

import (
	"slices"

	"github.com/goliatone/go-solutions/internal/blocks"
	"github.com/google/uuid"
)

// AddFaqItem appends faq to a FAQsBlock or FeaturesBlock and returns its
// position. Pass a zero FAQ to add a blank row.
func (e *Editor) AddFaqItem(blockID uuid.UUID, faq blocks.FAQ) (int, error) {
	index, faqs, rebuild, err := e.faqBlock(blockID)
	if err != nil {
		return -1, err
	}
	next := append(slices.Clone(faqs), faq)
	e.replace(index, blocks.Block{ID: blockID, Props: rebuild(next)})
	return len(next) - 1, nil
}

// UpdateFaqItem replaces the row at position item.
func (e *Editor) UpdateFaqItem(blockID uuid.UUID, item int, faq blocks.FAQ) error {
	index, faqs, rebuild, err := e.faqBlock(blockID)
	if err != nil {
		return err
	}
	if item < 0 || item >= len(faqs) {
		return &blocks.IndexError{BlockID: blockID, Index: item, Len: len(faqs)}
	}
	next := slices.Clone(faqs)
	next[item] = faq
	e.replace(index, blocks.Block{ID: blockID, Props: rebuild(next)})
	return nil
}

// RemoveFaqItem drops the row at position item.
func (e *Editor) RemoveFaqItem(blockID uuid.UUID, item int) error {
	index, faqs, rebuild, err := e.faqBlock(blockID)
	if err != nil {
		return err
	}
	if item < 0 || item >= len(faqs) {
		return &blocks.IndexError{BlockID: blockID, Index: item, Len: len(faqs)}
	}
	next := slices.Delete(slices.Clone(faqs), item, item+1)
	e.replace(index, blocks.Block{ID: blockID, Props: rebuild(next)})
	return nil
}

// AddServiceItem appends a tile to a ServicesBlock and returns its position.
func (e *Editor) AddServiceItem(blockID uuid.UUID, service blocks.ServiceItem) (int, error) {
	index, props, err := e.servicesBlock(blockID)
	if err != nil {
		return -1, err
	}
	next := append(slices.Clone(props.Services), service)
	e.replace(index, blocks.Block{ID: blockID, Props: blocks.ServicesProps{Services: next}})
	return len(next) - 1, nil
}

// UpdateServiceItem replaces the tile at position item.
func (e *Editor) UpdateServiceItem(blockID uuid.UUID, item int, service blocks.ServiceItem) error {
	index, props, err := e.servicesBlock(blockID)
	if err != nil {
		return err
	}
	if item < 0 || item >= len(props.Services) {
		return &blocks.IndexError{BlockID: blockID, Index: item, Len: len(props.Services)}
	}
	next := slices.Clone(props.Services)
	next[item] = service
	e.replace(index, blocks.Block{ID: blockID, Props: blocks.ServicesProps{Services: next}})
	return nil
}

// RemoveServiceItem drops the tile at position item.
func (e *Editor) RemoveServiceItem(blockID uuid.UUID, item int) error {
	index, props, err := e.servicesBlock(blockID)
	if err != nil {
		return err
	}
	if item < 0 || item >= len(props.Services) {
		return &blocks.IndexError{BlockID: blockID, Index: item, Len: len(props.Services)}
	}
	next := slices.Delete(slices.Clone(props.Services), item, item+1)
	e.replace(index, blocks.Block{ID: blockID, Props: blocks.ServicesProps{Services: next}})
	return nil
}

// faqBlock resolves a block carrying a FAQ list. rebuild wraps a new list in
// the block's own variant so FAQs and Features never cross over.
func (e *Editor) faqBlock(id uuid.UUID) (int, []blocks.FAQ, func([]blocks.FAQ) blocks.Props, error) {
	index, err := e.indexOf(id)
	if err != nil {
		return -1, nil, nil, err
	}
	switch props := e.draft.Blocks[index].Props.(type) {
	case blocks.FAQsProps:
		return index, props.FAQs, func(faqs []blocks.FAQ) blocks.Props {
			return blocks.FAQsProps{FAQs: faqs}
		}, nil
	case blocks.FeaturesProps:
		return index, props.FAQs, func(faqs []blocks.FAQ) blocks.Props {
			return blocks.FeaturesProps{FAQs: faqs}
		}, nil
	default:
		return -1, nil, nil, &blocks.TagMismatchError{
			BlockID:  id,
			Stored:   e.draft.Blocks[index].Kind(),
			Provided: blocks.KindFAQs,
		}
	}
}

func (e *Editor) servicesBlock(id uuid.UUID) (int, blocks.ServicesProps, error) {
	index, err := e.indexOf(id)
	if err != nil {
		return -1, blocks.ServicesProps{}, err
	}
	props, ok := e.draft.Blocks[index].Props.(blocks.ServicesProps)
	if !ok {
		return -1, blocks.ServicesProps{}, &blocks.TagMismatchError{
			BlockID:  id,
			Stored:   e.draft.Blocks[index].Kind(),
			Provided: blocks.KindServices,
		}
	}
	return index, props, nil
}
