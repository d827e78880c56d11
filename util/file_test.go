package util_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/wunderlist/clickonce-to-squirrel/util"
)

var _ = Describe("Client", func() {

	var (
		tmpDir string
	)

	type TestConfig struct {
		SomeMap   map[string]string
		SomeArray []string
		SomeField int
	}

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "c2s_util_test_tmp_*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		err := os.RemoveAll(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Config", func() {
		Context("in JSON format", func() {
			It("should be written and read successfully", func() {
				arr := []string{"value1", "value2"}
				written := &TestConfig{
					SomeMap:   map[string]string{"key1": "value1", "key2": "value2"},
					SomeArray: arr,
					SomeField: 99,
				}

				file := filepath.Join(tmpDir, "nested", "testconfig.json")
				err := util.WriteJson(context.Background(), file, written)
				Expect(err).NotTo(HaveOccurred())

				read, err := util.ReadJson(file, &TestConfig{})
				Expect(err).NotTo(HaveOccurred())
				Expect(read).NotTo(BeNil())
				Expect(read.(*TestConfig).SomeMap["key1"]).To(BeEquivalentTo(written.SomeMap["key1"]))
				Expect(read.(*TestConfig).SomeArray).To(ContainElements(arr))
				Expect(read.(*TestConfig).SomeField).To(BeEquivalentTo(written.SomeField))
			})

			It("should not leave temp files behind", func() {
				file := filepath.Join(tmpDir, "testconfig.json")
				Expect(util.WriteJson(context.Background(), file, &TestConfig{SomeField: 1})).To(Succeed())

				entries, err := os.ReadDir(tmpDir)
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(HaveLen(1))
			})

			It("should refuse to write with a cancelled context", func() {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()

				err := util.WriteJson(ctx, filepath.Join(tmpDir, "cancelled.json"), &TestConfig{})
				Expect(err).To(HaveOccurred())
				Expect(util.FileExists(filepath.Join(tmpDir, "cancelled.json"))).To(BeFalse())
			})
		})

		Context("with environment substitution", func() {
			It("should replace environment references", func() {
				Expect(os.Setenv("C2S_TEST_APP_NAME", "ClickOnceApp")).To(Succeed())
				defer os.Unsetenv("C2S_TEST_APP_NAME")

				file := filepath.Join(tmpDir, "env.json")
				content := `{"SomeMap": {"app": "{{ .C2S_TEST_APP_NAME }}"}, "SomeField": 3}`
				Expect(os.WriteFile(file, []byte(content), 0o600)).To(Succeed())

				read, err := util.ReadJsonWithEnvSub(file, &TestConfig{})
				Expect(err).NotTo(HaveOccurred())
				Expect(read.(*TestConfig).SomeMap["app"]).To(Equal("ClickOnceApp"))
				Expect(read.(*TestConfig).SomeField).To(Equal(3))
			})
		})
	})

	Describe("Removing a JSON file", func() {
		It("should ignore missing files", func() {
			Expect(util.RemoveJson(filepath.Join(tmpDir, "missing.json"))).To(Succeed())
		})

		It("should delete existing files", func() {
			file := filepath.Join(tmpDir, "result.json")
			Expect(util.WriteJson(context.Background(), file, []string{"1"})).To(Succeed())
			Expect(util.RemoveJson(file)).To(Succeed())
			Expect(util.FileExists(file)).To(BeFalse())
		})
	})

	Describe("Checking paths", func() {
		It("should tell files and folders apart", func() {
			file := filepath.Join(tmpDir, "file.txt")
			Expect(os.WriteFile(file, []byte("x"), 0o600)).To(Succeed())

			Expect(util.FileExists(file)).To(BeTrue())
			Expect(util.DirExists(file)).To(BeFalse())
			Expect(util.FileExists(tmpDir)).To(BeFalse())
			Expect(util.DirExists(tmpDir)).To(BeTrue())
		})
	})
})
