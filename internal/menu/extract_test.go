package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSectionPage = `<html><body>
<div class="sec-wrap">
  <div class="c_l-content">
    <section>
      <h3><a href="#nigiri">にぎり</a></h3>
      <ul class="item-list">
        <li><a href="/menu/1"><span class="ttl">まぐろ</span></a></li>
        <li><a href="/menu/2"><span class="ttl">炙り
サーモン
<small>バジルチーズ</small></span></a></li>
      </ul>
    </section>
    <section>
      <h3><a href="#drink">ドリンク</a></h3>
      <ul class="item-list">
        <li><a href="/menu/3"><span class="ttl">緑茶</span></a></li>
      </ul>
    </section>
  </div>
</div>
</body></html>`

func TestExtract_TwoSections(t *testing.T) {
	x, err := (&Extractor{}).Extract(twoSectionPage)
	require.NoError(t, err)

	assert.Equal(t, []RawEntry{
		{Label: "にぎり", Name: "まぐろ"},
		{Label: "にぎり", Name: "炙りサーモンバジルチーズ"},
		{Label: "ドリンク", Name: "緑茶"},
	}, x.Entries())

	catalog, err := BuildCatalog(x.Sections)
	require.NoError(t, err)
	require.Len(t, catalog, 3)
	assert.Equal(t, Nigiri, catalog[0].Category)
	assert.Equal(t, Nigiri, catalog[1].Category)
	assert.Equal(t, Drink, catalog[2].Category)
	for _, e := range catalog {
		assert.NotContains(t, e.Name, "\n")
	}
}

func TestExtract_NoSections(t *testing.T) {
	x, err := (&Extractor{}).Extract(`<html><body><p>メンテナンス中</p></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, x.Sections)
	assert.Empty(t, x.Entries())
}

func TestExtract_SectionWithoutItems(t *testing.T) {
	page := `<div class="sec-wrap"><div class="c_l-content">
		<section><h3><a>デザート</a></h3><ul class="item-list"></ul></section>
	</div></div>`

	x, err := (&Extractor{}).Extract(page)
	require.NoError(t, err)
	require.Len(t, x.Sections, 1)
	assert.Equal(t, "デザート", x.Sections[0].Label)
	assert.Empty(t, x.Sections[0].Items)
}

const brokenPage = `<div class="sec-wrap"><div class="c_l-content">
	<section><h3>見出しリンクなし</h3>
		<ul class="item-list"><li><a><span class="ttl">いか</span></a></li></ul>
	</section>
	<section><h3><a>にぎり</a></h3>
		<ul class="item-list">
			<li><a><span class="price">120円</span></a></li>
			<li><a><span class="ttl">えび</span></a></li>
		</ul>
	</section>
</div></div>`

func TestExtract_SkipsMissingNodes(t *testing.T) {
	x, err := (&Extractor{}).Extract(brokenPage)
	require.NoError(t, err)

	assert.Equal(t, 1, x.SkippedSections)
	assert.Equal(t, 1, x.SkippedItems)
	assert.Equal(t, []RawEntry{{Label: "にぎり", Name: "えび"}}, x.Entries())
}

func TestExtract_StrictAbortsOnMissingNodes(t *testing.T) {
	_, err := (&Extractor{Strict: true}).Extract(brokenPage)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMarkupShape))
}

func TestBuildCatalog_UnknownCategory(t *testing.T) {
	sections := []Section{
		{Label: "にぎり", Items: []string{"まぐろ"}},
		{Label: "ラーメン", Items: []string{"醤油ラーメン"}},
	}

	catalog, err := BuildCatalog(sections)
	assert.Nil(t, catalog)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCategory))

	var unknown *UnknownCategoryError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "ラーメン", unknown.Label)
}

func TestBuildCatalog_UnknownCategoryWithoutItems(t *testing.T) {
	_, err := BuildCatalog([]Section{{Label: "季節の逸品"}})
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestBuildCatalog_KeepsDuplicatesAndOrder(t *testing.T) {
	catalog, err := BuildCatalog([]Section{
		{Label: "にぎり", Items: []string{"まぐろ", "まぐろ"}},
		{Label: "期間限定", Items: []string{"まぐろ"}},
	})
	require.NoError(t, err)
	assert.Equal(t, Catalog{
		{Category: Nigiri, Name: "まぐろ"},
		{Category: Nigiri, Name: "まぐろ"},
		{Category: LimitedTime, Name: "まぐろ"},
	}, catalog)

	counts := catalog.CountByCategory()
	assert.Equal(t, 2, counts[Nigiri])
	assert.Equal(t, 1, counts[LimitedTime])
}

func TestBuildCatalog_Empty(t *testing.T) {
	catalog, err := BuildCatalog(nil)
	require.NoError(t, err)
	assert.NotNil(t, catalog)
	assert.Empty(t, catalog)
}
